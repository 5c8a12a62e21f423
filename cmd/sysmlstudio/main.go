// Package main provides the sysmlstudio binary entry point.
// SysML Studio is a model authoring backend that persists SysML v2 elements
// and relationships in a property graph and serves viewpoint-scoped views
// over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	// Register vocabularies via init()
	_ "github.com/c360studio/sysmlstudio/vocabulary/sysml"

	"github.com/spf13/cobra"

	"github.com/c360studio/sysmlstudio/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sysmlstudio"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		httpAddr   string
	)

	cmd := &cobra.Command{
		Use:   "sysmlstudio",
		Short: "SysML model authoring backend",
		Long: `SysML Studio is a model authoring backend for SysML v2.

It provides:
- Element and relationship CRUD over a Neo4j property graph
- Viewpoint-scoped model views for diagram rendering
- Per-viewpoint diagram layout persistence
- Optional model change events over NATS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logLevel, httpAddr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, logLevel, httpAddr string) error {
	// Print banner
	printBanner()

	// Load configuration: explicit file wins over layered discovery.
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override file values.
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	slog.Info("SysML Studio ready",
		"version", Version,
		"graph_uri", cfg.Graph.URI,
		"addr", cfg.HTTP.Addr)

	// Setup signal handling
	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	app, err := NewApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	if err := app.Start(signalCtx); err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	// Block until shutdown signal
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	app.Shutdown(30 * time.Second)

	slog.Info("SysML Studio shutdown complete")
	return nil
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.NewLoader(slog.Default()).Load()
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║           SysML Studio v" + Version + "                  ║")
	fmt.Println("║      Model Authoring Backend                  ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}
