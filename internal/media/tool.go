package media

import (
	"fmt"
	"strings"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/pkg/logger"
)

// Target geometry every clip is normalized to before concatenation.
const (
	TargetWidth     = 1080
	TargetHeight    = 1920
	TargetFrameRate = 30
)

// Tool wraps the external ffmpeg/ffprobe binaries behind typed operations.
type Tool struct {
	ffmpeg  string
	ffprobe string
	run     Runner
	logger  logger.Logger
}

func NewTool(cfg *config.MediaConfig, log logger.Logger) *Tool {
	return NewToolWithRunner(cfg, log, execRunner{})
}

func NewToolWithRunner(cfg *config.MediaConfig, log logger.Logger, run Runner) *Tool {
	ffmpeg := cfg.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobe := cfg.FFprobePath
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &Tool{ffmpeg: ffmpeg, ffprobe: ffprobe, run: run, logger: log}
}

// Available verifies both binaries can be invoked.
func (t *Tool) Available() error {
	for _, bin := range []string{t.ffmpeg, t.ffprobe} {
		if _, err := t.run.LookPath(bin); err != nil {
			return models.NewProcessingError(models.ErrToolUnavailable,
				fmt.Sprintf("media tool %q not found", bin), err.Error())
		}
	}
	return nil
}

func toolFailure(op string, err error, out []byte) error {
	return models.NewProcessingError(models.ErrToolExecution, op,
		fmt.Sprintf("%v: %s", err, strings.TrimSpace(string(out))))
}
