package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rankreel/rankreel/internal/cleanup"
	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/pkg/logger"
)

const (
	maxHeaderBytes = 1 << 20
	ctxTimeout     = 5

	// Compile requests hold five uploads and run several ffmpeg passes, so
	// the write timeout is generous.
	readTimeout  = 60 * time.Second
	writeTimeout = 600 * time.Second
)

type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	scheduler *cleanup.Scheduler
	logger    logger.Logger
}

func NewServer(cfg *config.Config, scheduler *cleanup.Scheduler, logger logger.Logger) *Server {
	return &Server{
		echo:      echo.New(),
		cfg:       cfg,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *Server) Run() error {
	if err := s.MapHandlers(s.echo); err != nil {
		return err
	}
	s.echo.Server.MaxHeaderBytes = maxHeaderBytes
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       300,
	}))
	server := &http.Server{
		Addr:         s.cfg.Server.Port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	go func() {
		if err := s.echo.StartServer(server); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("error starting Server: ", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	s.scheduler.Shutdown()

	ctx, shutdown := context.WithTimeout(context.Background(), time.Second*ctxTimeout)
	defer shutdown()
	s.logger.Infof("shutting down server")
	return s.echo.Server.Shutdown(ctx)
}
