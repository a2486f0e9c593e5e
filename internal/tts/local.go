package tts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rankreel/rankreel/internal/models"
)

const (
	defaultLocalEngine = "espeak-ng"

	// Hard ceiling on a local synthesis run. Remote backends rely on the
	// HTTP client timeout instead.
	localEngineTimeout = 2 * time.Minute
)

// synthesizeLocal delegates to an external local speech engine. The engine is
// verified to be invocable first; the router degrades to mock on any failure.
func (e *Engine) synthesizeLocal(ctx context.Context, text, outputDir string) (models.SynthesisResult, error) {
	bin := e.cfg.LocalEnginePath
	if bin == "" {
		bin = defaultLocalEngine
	}
	if _, err := e.run.LookPath(bin); err != nil {
		return models.SynthesisResult{}, fmt.Errorf("local engine %q not invocable: %w", bin, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, localEngineTimeout)
	defer cancel()

	outputPath := filepath.Join(outputDir, "narration.wav")
	out, err := e.run.Run(runCtx, bin, "-w", outputPath, text)
	if err != nil {
		return models.SynthesisResult{}, fmt.Errorf("local engine: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return models.SynthesisResult{
		AudioPath: outputPath,
		Duration:  models.EstimateSpeechSeconds(len(strings.Fields(text))),
		Backend:   models.BackendLocal,
	}, nil
}
