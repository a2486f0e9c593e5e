package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rankreel/rankreel/internal/models"
)

const (
	defaultPremiumAPIURL = "https://api.elevenlabs.io/v1/text-to-speech"
	defaultPremiumVoice  = "21m00Tcm4TlvDq8ikWAM"
)

// synthesizePremium sends the full text in a single call; the service handles
// chunking internally. This path is explicitly chosen and paid for, so its
// failures are fatal rather than degraded.
func (e *Engine) synthesizePremium(ctx context.Context, text, outputDir string) (models.SynthesisResult, error) {
	voice := e.cfg.Voice
	if voice == "" {
		voice = defaultPremiumVoice
	}
	url := e.cfg.PremiumAPIURL
	if url == "" {
		url = defaultPremiumAPIURL
	}
	url += "/" + voice

	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
	})
	if err != nil {
		return models.SynthesisResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.SynthesisResult{}, err
	}
	req.Header.Set("xi-api-key", e.cfg.PremiumAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return models.SynthesisResult{}, models.NewProcessingError(models.ErrRemoteService, "premium tts", err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return models.SynthesisResult{}, models.NewProcessingError(models.ErrRemoteService, "premium tts",
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(rb))))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SynthesisResult{}, models.NewProcessingError(models.ErrRemoteService, "premium tts", err.Error())
	}
	outputPath := filepath.Join(outputDir, "narration.mp3")
	if err := os.WriteFile(outputPath, audio, 0644); err != nil {
		return models.SynthesisResult{}, fmt.Errorf("write premium audio: %w", err)
	}

	return models.SynthesisResult{
		AudioPath: outputPath,
		Duration:  models.EstimateSpeechSeconds(len(strings.Fields(text))),
		Backend:   models.BackendPremium,
	}, nil
}
