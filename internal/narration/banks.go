package narration

import "github.com/rankreel/rankreel/internal/models"

// Phrase banks keyed by narration style. The generator picks one variant per
// slot with a seed derived from the request, so identical requests produce
// identical scripts.

var intros = map[models.NarrationStyle][]string{
	models.StyleEnergetic: {
		"Get ready, because we're counting down the top five %s and number one is going to blow your mind!",
		"Buckle up! These are the five %s everyone's talking about, ranked from great to absolutely legendary!",
		"It's countdown time! Five incredible %s, one crown, let's get into it!",
	},
	models.StyleCasual: {
		"Alright, so here are my top five %s, counting down to my absolute favorite.",
		"So I put together my five favorite %s, and honestly, ranking these was tough.",
		"Here we go, my personal top five %s, saving the best for last.",
	},
	models.StyleProfessional: {
		"Welcome. Today we present a ranked review of the top five %s.",
		"In this countdown, we examine five outstanding %s, concluding with our highest recommendation.",
		"What follows is our definitive ranking of the five leading %s.",
	},
}

var outros = map[models.NarrationStyle][]string{
	models.StyleEnergetic: {
		"And that's the countdown! Smash that follow button if your favorite made the list!",
		"That's a wrap on the top five! Tell us in the comments if we got number one right!",
	},
	models.StyleCasual: {
		"And that's my list. Let me know what you would have picked for number one.",
		"So yeah, that's my top five. Agree? Disagree? Either way, thanks for watching.",
	},
	models.StyleProfessional: {
		"That concludes our ranking. Thank you for watching, and we welcome your perspective on the results.",
		"This completes the countdown. We appreciate your time and interest.",
	},
}

var rankIntros = map[models.NarrationStyle]map[int][]string{
	models.StyleEnergetic: {
		5: {"Kicking things off at number five!", "Starting strong at number five!"},
		4: {"Coming in hot at number four!", "Number four is here and it delivers!"},
		3: {"Halfway there, this is number three!", "At number three, things get serious!"},
		2: {"So close to the top, number two!", "The runner-up spot goes to this beauty, number two!"},
		1: {"And here it is, the moment you've been waiting for, number one!", "Taking the crown at number one!"},
	},
	models.StyleCasual: {
		5: {"Starting off at number five.", "First up, number five."},
		4: {"Next up, number four.", "Moving on to number four."},
		3: {"Right in the middle, number three.", "Now for number three."},
		2: {"Almost at the top, number two.", "Coming in second, number two."},
		1: {"And finally, my number one.", "Which brings us to number one."},
	},
	models.StyleProfessional: {
		5: {"In fifth place.", "We begin in fifth position."},
		4: {"In fourth place.", "Fourth position goes to the following entry."},
		3: {"In third place.", "At the midpoint, third position."},
		2: {"In second place.", "Our runner-up, in second position."},
		1: {"And in first place.", "Finally, our top selection."},
	},
}

// Canned bodies used when the caller supplied no description. The cleaned-up
// title is substituted into the sentence.
var fillers = map[int][]string{
	5: {
		"%s earns its spot on this list without breaking a sweat.",
		"%s sets the tone for everything that follows.",
	},
	4: {
		"%s brings something the rest of the list can't quite match.",
		"%s is the kind of pick that sneaks up on you.",
	},
	3: {
		"%s sits comfortably in the middle, and it deserves to be here.",
		"%s holds the center of this countdown with ease.",
	},
	2: {
		"%s came painfully close to taking the top spot.",
		"%s is almost impossible to beat, almost.",
	},
	1: {
		"%s stands above everything else on this list, no contest.",
		"%s is the clear winner, and once you see it you'll understand why.",
	},
}

var rankEmojis = map[int]string{
	5: "🎬",
	4: "🔥",
	3: "⭐",
	2: "🥈",
	1: "🏆",
}

const (
	introEmoji = "🚀"
	outroEmoji = "🙌"
)
