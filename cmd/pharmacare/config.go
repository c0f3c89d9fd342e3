package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/duckdb"
	"github.com/pharmacare/showcase/internal/httpserver"
	"github.com/pharmacare/showcase/internal/model"
	"github.com/pharmacare/showcase/internal/socketrpc"

	"github.com/spf13/viper"
)

const (
	defaultBindHost     = "127.0.0.1"
	defaultAPIPort      = 3000
	defaultQueryTimeout = duckdb.DefaultQueryTimeout
	defaultLogLevel     = "info"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	APIEnabled             bool          `mapstructure:"api-enabled"`
	APIPort                int           `mapstructure:"api-port"`
	APIAddr                string        `mapstructure:"api-addr"`
	SocketPath             string        `mapstructure:"socket-path"`
	LogLevel               string        `mapstructure:"log-level"`
	LogFile                string        `mapstructure:"log-file"`
	CatalogSeed            string        `mapstructure:"catalog-seed"`
	QueryTimeout           time.Duration `mapstructure:"query-timeout"`
	AssistantLanguage      string        `mapstructure:"assistant-language"`
	AssistantTypingDelay   time.Duration `mapstructure:"assistant-typing-delay"`
	AssistantThinkingDelay time.Duration `mapstructure:"assistant-thinking-delay"`
	AssistantImageDelay    time.Duration `mapstructure:"assistant-image-delay"`
	MaxUploadBytes         int64         `mapstructure:"max-upload-bytes"`
	ConfigPath             string        `mapstructure:"-"` // not from config file
}

func (c appConfig) assistantConfig() assistant.Config {
	return assistant.Config{
		Language:      c.AssistantLanguage,
		TypingDelay:   c.AssistantTypingDelay,
		ThinkingDelay: c.AssistantThinkingDelay,
		ImageDelay:    c.AssistantImageDelay,
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PHARMACARE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-enabled", true)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("api-addr", "")
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetDefault("catalog-seed", "")
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("assistant-language", model.DefaultAssistantLanguage)
	v.SetDefault("assistant-typing-delay", model.DefaultAssistantTypingDelay)
	v.SetDefault("assistant-thinking-delay", model.DefaultAssistantThinkingDelay)
	v.SetDefault("assistant-image-delay", model.DefaultAssistantImageDelay)
	v.SetDefault("max-upload-bytes", httpserver.DefaultMaxUploadBytes)

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
	if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	// Expand ~ in file paths
	cfg.CatalogSeed = expandHome(cfg.CatalogSeed, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.SocketPath = expandHome(cfg.SocketPath, home)

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func (c appConfig) validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid api-port: %d", c.APIPort)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("invalid query-timeout: %s", c.QueryTimeout)
	}
	if !slices.Contains(assistant.Languages(), strings.ToLower(c.AssistantLanguage)) {
		return fmt.Errorf("invalid assistant-language %q (want one of %s)",
			c.AssistantLanguage, strings.Join(assistant.Languages(), ", "))
	}
	if c.AssistantTypingDelay < 0 || c.AssistantThinkingDelay < 0 || c.AssistantImageDelay < 0 {
		return errors.New("assistant delays must not be negative")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max-upload-bytes: %d", c.MaxUploadBytes)
	}
	return nil
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
