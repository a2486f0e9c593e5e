package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    Logger
	Media     MediaConfig
	Narration NarrationConfig
	TTS       TTSConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

type MediaConfig struct {
	FFmpegPath  string
	FFprobePath string
	WorkDir     string
	OutputDir   string
	// OutputRetentionSec is how long a finished output file is kept before
	// the deferred cleanup removes it.
	OutputRetentionSec int
}

type NarrationConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	FallbackModels []string
}

type TTSConfig struct {
	// Service forces a specific backend regardless of configured credentials.
	Service         string
	PremiumAPIKey   string
	PremiumAPIURL   string
	FreeAPIKey      string
	FreeAPIURL      string
	LocalEngine     bool
	LocalEnginePath string
	Voice           string
}

type WorkerConfig struct {
	MaxCPUUsage float64
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
	if c.Media.FFprobePath == "" {
		c.Media.FFprobePath = "ffprobe"
	}
	if c.Media.WorkDir == "" {
		c.Media.WorkDir = "tmp_jobs"
	}
	if c.Media.OutputDir == "" {
		c.Media.OutputDir = "outputs"
	}
	if c.Media.OutputRetentionSec <= 0 {
		c.Media.OutputRetentionSec = 60
	}
	if c.Worker.MaxCPUUsage <= 0 {
		c.Worker.MaxCPUUsage = 90.0
	}
}
