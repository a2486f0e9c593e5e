package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/models"
)

const (
	defaultBaseURL = "https://openrouter.ai"
	defaultModel   = "anthropic/claude-3.5-sonnet"

	// Responses shorter than this are treated as refusals or truncation and
	// the next model in the chain is tried.
	minPolishedLen = 80

	polishTimeout = 60 * time.Second
)

var defaultFallbackModels = []string{
	"meta-llama/llama-3.1-70b-instruct",
	"mistralai/mistral-nemo",
}

// RemotePolisher rewrites template scripts through a prioritized list of
// remote chat-completion models. Every failure falls through to the next
// model; exhausting the list is reported to the caller, who keeps the
// template script.
type RemotePolisher struct {
	key     string
	baseURL string
	models  []string
	client  *http.Client
}

func NewRemotePolisher(cfg *config.NarrationConfig) *RemotePolisher {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	primary := cfg.Model
	if primary == "" {
		primary = defaultModel
	}
	fallbacks := cfg.FallbackModels
	if len(fallbacks) == 0 {
		fallbacks = defaultFallbackModels
	}
	return &RemotePolisher{
		key:     cfg.APIKey,
		baseURL: baseURL,
		models:  append([]string{primary}, fallbacks...),
		client:  &http.Client{Timeout: polishTimeout},
	}
}

func (p *RemotePolisher) Polish(ctx context.Context, script, topic string) (string, error) {
	prompt := buildPolishPrompt(script, topic)

	var lastErr error
	for _, model := range p.models {
		text, err := p.call(ctx, model, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		cleaned := cleanModelResponse(text)
		if len(cleaned) < minPolishedLen {
			lastErr = fmt.Errorf("model %s returned unusable text (%d chars)", model, len(cleaned))
			continue
		}
		return cleaned, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no polish models configured")
	}
	return "", models.NewProcessingError(models.ErrRemoteService, "narration polish", lastErr.Error())
}

func (p *RemotePolisher) call(ctx context.Context, model, prompt string) (string, error) {
	payload := map[string]any{
		"model":  model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/api/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model %s status %d: %s", model, resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("model %s: empty choices", model)
	}
	return contentToString(raw.Choices[0].Message.Content)
}

// contentToString accepts both the plain-string and the parts-array content
// shapes that providers return.
func contentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []any:
		var b strings.Builder
		for _, it := range x {
			if m, ok := it.(map[string]any); ok {
				if t, ok := m["text"].(string); ok {
					b.WriteString(t)
				}
			}
		}
		if strings.TrimSpace(b.String()) == "" {
			return "", fmt.Errorf("empty content parts")
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unexpected content type %T", v)
	}
}

func buildPolishPrompt(script, topic string) string {
	return "Rewrite the following top-5 countdown narration script about " + topic + " " +
		"to flow naturally when spoken aloud. Keep the same structure: an intro, five ranked " +
		"entries from number five down to number one, and an outro, with paragraphs separated " +
		"by blank lines. Keep roughly the same length. Return only the script text, with no " +
		"preamble, headings, or markdown.\n\nScript:\n" + script
}

var preamblePhrases = []string{
	"here is",
	"here's",
	"sure",
	"certainly",
	"of course",
	"okay",
}

// cleanModelResponse strips instruction-format artifacts and leading preamble
// lines that chat models tend to emit around the requested text.
func cleanModelResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}

	for _, tag := range []string{"[INST]", "[/INST]", "<s>", "</s>", "<<SYS>>", "<</SYS>>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "\n"); i > 0 {
		first := strings.ToLower(strings.TrimSpace(s[:i]))
		for _, phrase := range preamblePhrases {
			if strings.HasPrefix(first, phrase) && (strings.HasSuffix(first, ":") || len(first) < 60) {
				s = strings.TrimSpace(s[i+1:])
				break
			}
		}
	}
	return s
}
