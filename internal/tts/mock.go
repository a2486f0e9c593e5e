package tts

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rankreel/rankreel/internal/models"
)

// Mock output is never shorter than this, so downstream audio composition
// always has a real track to work with.
const minMockSeconds = 10

// synthesizeMock produces a silent track whose length matches the word-count
// estimate. It prefers the media tool and falls back to writing a minimal
// silent WAV in-process, so the mock path cannot fail on a machine without
// ffmpeg.
func (e *Engine) synthesizeMock(ctx context.Context, text, outputDir string) (models.SynthesisResult, error) {
	seconds := models.EstimateSpeechSeconds(len(strings.Fields(text)))
	if seconds < minMockSeconds {
		seconds = minMockSeconds
	}
	outputPath := filepath.Join(outputDir, "narration.wav")

	if err := e.tool.Available(); err == nil {
		if err := e.tool.GenerateSilence(ctx, outputPath, seconds); err == nil {
			return models.SynthesisResult{AudioPath: outputPath, Duration: seconds, Backend: models.BackendMock}, nil
		}
		e.logger.Warnf("media tool silence generation failed, writing wav in-process")
	}

	if err := writeSilentWAV(outputPath, seconds); err != nil {
		return models.SynthesisResult{}, err
	}
	return models.SynthesisResult{AudioPath: outputPath, Duration: seconds, Backend: models.BackendMock}, nil
}
