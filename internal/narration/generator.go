package narration

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/pkg/logger"
)

const defaultTopic = "picks"

// Options control one generation call.
type Options struct {
	Topic         string
	Style         models.NarrationStyle
	IncludeEmojis bool
	UseLLM        bool
}

// Polisher rewrites a template script through a remote model.
type Polisher interface {
	Polish(ctx context.Context, script, topic string) (string, error)
}

// Generator produces countdown narration scripts. The template path is fully
// deterministic for a given request; the optional polish pass can only ever
// replace the script, never fail the call.
type Generator struct {
	cfg      *config.NarrationConfig
	polisher Polisher
	logger   logger.Logger
}

func NewGenerator(cfg *config.NarrationConfig, log logger.Logger) *Generator {
	g := &Generator{cfg: cfg, logger: log}
	if cfg.APIKey != "" {
		g.polisher = NewRemotePolisher(cfg)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, items []models.NarrationItem, opts Options) models.NarrationResult {
	style := opts.Style
	if _, ok := intros[style]; !ok {
		style = models.StyleEnergetic
	}
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		topic = defaultTopic
	}

	sorted := make([]models.NarrationItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })

	rng := rand.New(rand.NewSource(scriptSeed(sorted, topic, style, opts.IncludeEmojis)))

	paragraphs := make([]string, 0, len(sorted)+2)

	intro := fmt.Sprintf(pick(rng, intros[style]), topic)
	if opts.IncludeEmojis {
		intro += " " + introEmoji
	}
	paragraphs = append(paragraphs, intro)

	for _, item := range sorted {
		rankIntro := pick(rng, rankIntros[style][item.Rank])
		if opts.IncludeEmojis {
			rankIntro += " " + rankEmojis[item.Rank]
		}
		paragraphs = append(paragraphs, rankIntro+" "+itemBody(rng, item))
	}

	outro := pick(rng, outros[style])
	if opts.IncludeEmojis {
		outro += " " + outroEmoji
	}
	paragraphs = append(paragraphs, outro)

	script := strings.Join(paragraphs, "\n\n")

	polished := false
	if opts.UseLLM && g.polisher != nil {
		if improved, err := g.polisher.Polish(ctx, script, topic); err != nil {
			// The polish pass degrades, it never fails the request.
			g.logger.Warnf("narration polish failed, keeping template script: %v", err)
		} else {
			script = improved
			polished = true
		}
	}

	wordCount := len(strings.Fields(script))
	return models.NarrationResult{
		Script:            script,
		WasPolished:       polished,
		WordCount:         wordCount,
		EstimatedDuration: models.EstimateSpeechSeconds(wordCount),
	}
}

func itemBody(rng *rand.Rand, item models.NarrationItem) string {
	if body := strings.TrimSpace(item.Description); body != "" {
		return body
	}
	return fmt.Sprintf(pick(rng, fillers[item.Rank]), cleanTitle(item.Title))
}

// cleanTitle turns an uploaded file name into something speakable: strip the
// extension and replace separators with spaces.
func cleanTitle(title string) string {
	title = strings.TrimSuffix(title, filepath.Ext(title))
	title = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(title)
	return strings.Join(strings.Fields(title), " ")
}

func pick(rng *rand.Rand, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	return variants[rng.Intn(len(variants))]
}

// scriptSeed hashes the request so phrase selection is stable per request.
func scriptSeed(items []models.NarrationItem, topic string, style models.NarrationStyle, emojis bool) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%t", topic, style, emojis)
	for _, it := range items {
		fmt.Fprintf(h, "|%d:%s:%s", it.Rank, it.Title, it.Description)
	}
	return int64(h.Sum64())
}
