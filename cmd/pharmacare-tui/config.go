package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/carousel"
	"github.com/pharmacare/showcase/internal/model"
	"github.com/pharmacare/showcase/internal/socketrpc"

	"github.com/spf13/viper"
)

const (
	sourceLocal  = "local"
	sourceSocket = "socket"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	SocketPath             string        `mapstructure:"socket-path"`
	CatalogSource          string        `mapstructure:"catalog-source"`
	CatalogSeed            string        `mapstructure:"catalog-seed"`
	FrameInterval          time.Duration `mapstructure:"frame-interval"`
	LaneSpeed              float64       `mapstructure:"lane-speed"`
	LaneIdleTimeout        time.Duration `mapstructure:"lane-idle-timeout"`
	LaneSize               int           `mapstructure:"lane-size"`
	ReverseScrollWheel     bool          `mapstructure:"reverse-scroll-wheel"`
	CameraDevice           string        `mapstructure:"camera-device"`
	MaxUploadBytes         int64         `mapstructure:"max-upload-bytes"`
	LogLevel               string        `mapstructure:"log-level"`
	LogFile                string        `mapstructure:"log-file"`
	AssistantLanguage      string        `mapstructure:"assistant-language"`
	AssistantTypingDelay   time.Duration `mapstructure:"assistant-typing-delay"`
	AssistantThinkingDelay time.Duration `mapstructure:"assistant-thinking-delay"`
	AssistantImageDelay    time.Duration `mapstructure:"assistant-image-delay"`
}

func (c cliConfig) laneConfig() carousel.Config {
	return carousel.Config{Speed: c.LaneSpeed, IdleTimeout: c.LaneIdleTimeout}
}

func (c cliConfig) assistantConfig() assistant.Config {
	return assistant.Config{
		Language:      c.AssistantLanguage,
		TypingDelay:   c.AssistantTypingDelay,
		ThinkingDelay: c.AssistantThinkingDelay,
		ImageDelay:    c.AssistantImageDelay,
	}
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PHARMACARE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("catalog-source", sourceSocket)
	v.SetDefault("catalog-seed", "")
	v.SetDefault("frame-interval", model.DefaultFrameInterval)
	v.SetDefault("lane-speed", model.DefaultLaneSpeed)
	v.SetDefault("lane-idle-timeout", model.DefaultLaneIdleTimeout)
	v.SetDefault("lane-size", model.DefaultLaneSize)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("camera-device", "")
	v.SetDefault("max-upload-bytes", assistant.DefaultMaxImageBytes)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-file", "")
	v.SetDefault("assistant-language", model.DefaultAssistantLanguage)
	v.SetDefault("assistant-typing-delay", model.DefaultAssistantTypingDelay)
	v.SetDefault("assistant-thinking-delay", model.DefaultAssistantThinkingDelay)
	v.SetDefault("assistant-image-delay", model.DefaultAssistantImageDelay)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "pharmacare", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	for _, p := range []*string{&cfg.SocketPath, &cfg.CatalogSeed, &cfg.CameraDevice, &cfg.LogFile} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}

	return cfg, nil
}

func (c cliConfig) validate() error {
	if !slices.Contains([]string{sourceLocal, sourceSocket}, c.CatalogSource) {
		return fmt.Errorf("invalid catalog-source %q (want %s or %s)", c.CatalogSource, sourceLocal, sourceSocket)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("invalid frame-interval: %s", c.FrameInterval)
	}
	if c.LaneSpeed <= 0 {
		return fmt.Errorf("invalid lane-speed: %v", c.LaneSpeed)
	}
	if c.LaneIdleTimeout <= 0 {
		return fmt.Errorf("invalid lane-idle-timeout: %s", c.LaneIdleTimeout)
	}
	if c.LaneSize <= 0 {
		return fmt.Errorf("invalid lane-size: %d", c.LaneSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max-upload-bytes: %d", c.MaxUploadBytes)
	}
	if !slices.Contains(assistant.Languages(), strings.ToLower(c.AssistantLanguage)) {
		return fmt.Errorf("invalid assistant-language %q", c.AssistantLanguage)
	}
	return nil
}
