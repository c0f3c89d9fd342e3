package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/logging"
	"github.com/pharmacare/showcase/internal/model"
	"github.com/pharmacare/showcase/internal/socketrpc"
	"github.com/pharmacare/showcase/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var socketPath string
	var local bool
	var traceFrames int
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/pharmacare/config.yml)")
	flag.StringVar(&socketPath, "socket", "", "override socket path to connect to the pharmacare service")
	flag.BoolVar(&local, "local", false, "use the built-in catalog instead of the service")
	flag.IntVar(&traceFrames, "trace-lanes", 0, "print the lane offsets for N frames and exit")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("PharmaCare TUI - Showcase Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if socketPath != "" {
		cfg.SocketPath = socketPath
	}
	if local {
		cfg.CatalogSource = sourceLocal
	}

	if err := runTUI(cfg, traceFrames); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig, traceFrames int) error {
	// The terminal belongs to the UI; logs only go to the file.
	logger, closeLog, err := logging.New(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		App:   "pharmacare-tui",
	})
	if err != nil {
		logger = zerolog.Nop()
		closeLog = func() {}
	}
	defer closeLog()

	store, closeStore, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if traceFrames > 0 {
		return tui.TraceLanes(os.Stdout, store, cfg.laneConfig(), cfg.LaneSize, traceFrames, cfg.FrameInterval)
	}

	bot, err := assistant.NewSimulator(cfg.assistantConfig(), logger)
	if err != nil {
		return fmt.Errorf("configuring assistant: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	showcase := tui.NewShowcasePage(tui.ShowcaseConfig{
		Catalog:            store,
		FrameInterval:      cfg.FrameInterval,
		Lane:               cfg.laneConfig(),
		LaneSize:           cfg.LaneSize,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	chat := tui.NewAssistantPage(tui.AssistantConfig{
		Context:            ctx,
		Assistant:          bot,
		Camera:             assistant.DeviceCamera{Path: cfg.CameraDevice, MaxBytes: cfg.MaxUploadBytes},
		MaxImageBytes:      cfg.MaxUploadBytes,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(showcase, chat)

	logger.Info().
		Str("catalog", cfg.CatalogSource).
		Dur("frame", cfg.FrameInterval).
		Msg("Starting TUI")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// openCatalog returns the in-process catalog or a socket client to the service.
func openCatalog(cfg cliConfig) (model.CatalogQuerier, func(), error) {
	if cfg.CatalogSource == sourceLocal {
		seed, err := catalog.LoadSeed(cfg.CatalogSeed)
		if err != nil {
			return nil, nil, fmt.Errorf("loading catalog seed: %w", err)
		}
		return catalog.NewMemory(seed), func() {}, nil
	}

	client, err := socketrpc.Dial(cfg.SocketPath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to pharmacare service at %s: %w\nIs the service running? Start it with: pharmacare (or run with -local)", cfg.SocketPath, err)
	}
	return client, func() { client.Close() }, nil
}
