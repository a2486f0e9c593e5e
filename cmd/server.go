package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/rankreel/rankreel/internal/cleanup"
	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/internal/server"
	"github.com/rankreel/rankreel/pkg/logger"
)

func main() {
	log.Println("Starting server")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	scheduler := cleanup.NewScheduler(appLogger)

	s := server.NewServer(cfg, scheduler, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %s", err)
	}
}
