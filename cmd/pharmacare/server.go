package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/duckdb"
	"github.com/pharmacare/showcase/internal/httpserver"
	"github.com/pharmacare/showcase/internal/logging"
	"github.com/pharmacare/showcase/internal/socketrpc"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// runServer loads the catalog into DuckDB and serves it over the HTTP API
// and the unix socket until interrupted.
func runServer(cfg appConfig) error {
	logger, closeLog, err := logging.New(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		App:   "pharmacare",
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	seed, err := catalog.LoadSeed(cfg.CatalogSeed)
	if err != nil {
		return fmt.Errorf("loading catalog seed: %w", err)
	}

	store, err := duckdb.NewStore(logger, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	if err := store.Seed(seed); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	bot, err := assistant.NewSimulator(cfg.assistantConfig(), logger)
	if err != nil {
		return fmt.Errorf("configuring assistant: %w", err)
	}

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		logger.Info().Msg("Shutdown requested")
		cancel()

		// Shutdown deadline starts now, not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		cleanupSocket(cfg.SocketPath)
		os.Exit(1)
	}()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, store, bot, logger, cfg.MaxUploadBytes)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		g.Go(func() error {
			<-gctx.Done()
			return apiServer.Stop()
		})
	}

	// Socket RPC serves the terminal client.
	socketUp := true
	sockServer := socketrpc.NewServer(cfg.SocketPath, store, logger)
	if err := sockServer.Start(); err != nil {
		socketUp = false
		logger.Warn().Err(err).Msg("Failed to start socket server")
	} else {
		g.Go(func() error {
			<-gctx.Done()
			sockServer.Stop()
			return nil
		})
	}

	printStartupBanner(cfg, bannerInfo{
		socketUp: socketUp,
		products: len(seed.Products),
		seed:     cfg.CatalogSeed,
	})
	logger.Info().
		Int("products", len(seed.Products)).
		Bool("api", cfg.APIEnabled).
		Str("socket", cfg.SocketPath).
		Msg("Service started")

	// Wait for context cancellation (from signal handler) in the errgroup
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Shutdown finished with error")
	}

	// If we reach here, graceful shutdown succeeded within the deadline.
	signal.Stop(sigCh)
	logger.Info().Msg("Service stopped")

	return nil
}

func cleanupSocket(path string) {
	if path != "" {
		os.Remove(path)
	}
}

type bannerInfo struct {
	socketUp bool
	products int
	seed     string
}

func printStartupBanner(cfg appConfig, info bannerInfo) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")
	fail := red.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔═╗╦ ╦╔═╗╦═╗╔╦╗╔═╗╔═╗╔═╗╦═╗╔═╗
    ╠═╝╠═╣╠═╣╠╦╝║║║╠═╣║  ╠═╣╠╦╝║╣
    ╩  ╩ ╩╩ ╩╩╚═╩ ╩╩ ╩╚═╝╩ ╩╩╚═╚═╝`)

	ver := dim.Render("v" + version)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	// Gateway
	lines = append(lines, bold.Render("    Gateway"))
	lines = append(lines, "")

	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", dot, dim.Render("disabled")))
	}

	if info.socketUp {
		lines = append(lines, fmt.Sprintf("    %s  Unix Socket    %s", check, cyan.Render(shortenPath(cfg.SocketPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Unix Socket    %s", fail, dim.Render("unavailable (see log)")))
	}
	lines = append(lines, "")

	// Catalog
	lines = append(lines, bold.Render("    Catalog"))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("    %s  Storage        %s", check, dim.Render("DuckDB (in-memory)")))
	lines = append(lines, fmt.Sprintf("    %s  Products       %s", check, dim.Render(fmt.Sprintf("%d", info.products))))
	if info.seed != "" {
		lines = append(lines, fmt.Sprintf("    %s  Seed           %s", check, dim.Render(shortenPath(info.seed))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Seed           %s", dot, dim.Render("embedded")))
	}
	lines = append(lines, "")

	// Assistant
	lines = append(lines, bold.Render("    Assistant"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Language       %s", check, dim.Render(cfg.AssistantLanguage)))
	lines = append(lines, fmt.Sprintf("    %s  Reply Delay    %s", check,
		dim.Render(fmt.Sprintf("%s text / %s image", cfg.AssistantTypingDelay+cfg.AssistantThinkingDelay, cfg.AssistantImageDelay))))

	lines = append(lines, "")
	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
