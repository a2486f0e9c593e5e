package tts

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/media"
	"github.com/rankreel/rankreel/internal/models"
	"github.com/rankreel/rankreel/pkg/logger"
)

const remoteTimeout = 2 * time.Minute

// Engine routes speech synthesis to one of the interchangeable backends. The
// routing decision is state-free and re-evaluated per call.
type Engine struct {
	cfg    config.TTSConfig
	tool   *media.Tool
	run    media.Runner
	client *http.Client
	logger logger.Logger
}

func NewEngine(cfg config.TTSConfig, tool *media.Tool, log logger.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		tool:   tool,
		run:    media.DefaultRunner(),
		client: &http.Client{Timeout: remoteTimeout},
		logger: log,
	}
}

// Synthesize renders text into an audio file inside outputDir and reports the
// backend that actually produced it, which may differ from the selected one
// after fallback.
func (e *Engine) Synthesize(ctx context.Context, text, outputDir string) (models.SynthesisResult, error) {
	switch e.selectBackend() {
	case models.BackendPremium:
		// Premium is explicitly chosen and paid for; its failures are fatal.
		return e.synthesizePremium(ctx, text, outputDir)
	case models.BackendFree:
		res, err := e.synthesizeFree(ctx, text, outputDir)
		if err != nil {
			e.logger.Warnf("free tts failed, degrading to mock: %v", err)
			return e.synthesizeMock(ctx, text, outputDir)
		}
		return res, nil
	case models.BackendLocal:
		res, err := e.synthesizeLocal(ctx, text, outputDir)
		if err != nil {
			e.logger.Warnf("local tts engine failed, degrading to mock: %v", err)
			return e.synthesizeMock(ctx, text, outputDir)
		}
		return res, nil
	default:
		return e.synthesizeMock(ctx, text, outputDir)
	}
}

// selectBackend applies the configuration precedence: explicit service name,
// then premium key, then free key, then the local engine flag, then mock. An
// explicit name is only honored when its credential or flag is present, so a
// misconfigured request still degrades instead of failing.
func (e *Engine) selectBackend() models.TTSBackend {
	switch strings.ToLower(e.cfg.Service) {
	case string(models.BackendPremium):
		if e.cfg.PremiumAPIKey != "" {
			return models.BackendPremium
		}
	case string(models.BackendFree):
		if e.cfg.FreeAPIKey != "" {
			return models.BackendFree
		}
	case string(models.BackendLocal):
		if e.cfg.LocalEngine || e.cfg.LocalEnginePath != "" {
			return models.BackendLocal
		}
	case string(models.BackendMock):
		return models.BackendMock
	}

	switch {
	case e.cfg.PremiumAPIKey != "":
		return models.BackendPremium
	case e.cfg.FreeAPIKey != "":
		return models.BackendFree
	case e.cfg.LocalEngine:
		return models.BackendLocal
	default:
		return models.BackendMock
	}
}
