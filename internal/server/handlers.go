package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	countdownHttp "github.com/rankreel/rankreel/internal/countdown/delivery/http"
	countdownUsecase "github.com/rankreel/rankreel/internal/countdown/usecase"
	"github.com/rankreel/rankreel/internal/media"
	"github.com/rankreel/rankreel/internal/middleware"
	"github.com/rankreel/rankreel/internal/narration"
	"github.com/rankreel/rankreel/internal/pipeline"
	"github.com/rankreel/rankreel/internal/tts"
	"github.com/rankreel/rankreel/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	tool := media.NewTool(&s.cfg.Media, s.logger)
	ttsEngine := tts.NewEngine(s.cfg.TTS, tool, s.logger)
	generator := narration.NewGenerator(&s.cfg.Narration, s.logger)
	pipe := pipeline.New(tool, ttsEngine, s.logger)

	countdownUC := countdownUsecase.NewCountdownUseCase(s.cfg, pipe, generator, s.scheduler, s.logger)
	countdownHandlers := countdownHttp.NewCountdownHandler(countdownUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	e.Use(echoMw.RequestID())
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	countdownGroup := v1.Group("/countdown")

	countdownHttp.MapCountdownRoutes(countdownGroup, countdownHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
