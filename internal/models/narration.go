package models

import "math"

// NarrationWordsPerMinute is the assumed speaking pace used for every duration
// estimate in the system. Estimates are derived from word counts, not measured
// from rendered audio.
const NarrationWordsPerMinute = 150

type NarrationStyle string

const (
	StyleEnergetic    NarrationStyle = "energetic"
	StyleCasual       NarrationStyle = "casual"
	StyleProfessional NarrationStyle = "professional"
)

// NarrationItem describes one ranked entry for the script generator.
type NarrationItem struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Rank        int    `json:"rank" validate:"required,gte=1,lte=5"`
	Description string `json:"description"`
}

// NarrationRequest is the narration endpoint's JSON payload.
type NarrationRequest struct {
	Items         []NarrationItem `json:"items" validate:"required,len=5,dive"`
	Topic         string          `json:"topic"`
	Style         NarrationStyle  `json:"style" validate:"omitempty,oneof=energetic casual professional"`
	IncludeEmojis bool            `json:"includeEmojis"`
	UseLLM        bool            `json:"useLLM"`
}

// NarrationResult is the generated script plus derived metadata.
type NarrationResult struct {
	Script            string `json:"script"`
	WasPolished       bool   `json:"wasPolished"`
	WordCount         int    `json:"wordCount"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

// EstimateSpeechSeconds converts a word count into an estimated spoken
// duration in whole seconds, at the fixed narration pace.
func EstimateSpeechSeconds(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(wordCount) / NarrationWordsPerMinute * 60))
}
