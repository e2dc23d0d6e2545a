package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hinditts/internal/api"
	"hinditts/pkg/config"
	"hinditts/pkg/logging"
	"hinditts/pkg/trace"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts/providers"
	"hinditts/pkg/version"
)

const defaultConfigPath = "configs/hinditts.yaml"

var (
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	configPath = flag.String("config", defaultConfigPath, "Path to the YAML config file")
	envFile    = flag.String("env-file", ".env", "Optional file of KEY=VALUE environment variables")
)

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if err := run(context.Background(), *configPath, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, envPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// .env first so its values can fill config gaps
	envLoaded, err := config.LoadEnvFile(envPath)
	if err != nil {
		return err
	}

	appCfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Hindi TTS API Started", "version", version.Version, "env_file_loaded", envLoaded)

	if err := trace.Initialize(ctx, trace.Config{
		ServiceName:    "hinditts",
		ServiceVersion: version.Version,
		Environment:    appCfg.Trace.Environment,
		Exporter:       appCfg.Trace.Exporter,
		OTLPEndpoint:   appCfg.Trace.OTLPEndpoint,
		SamplingRate:   appCfg.Trace.SamplingRate,
	}); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := trace.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown tracing", "error", err)
		}
	}()

	printBanner(os.Stdout, appCfg)
	for _, p := range appCfg.MissingCredentials() {
		slog.Warn("Provider has no credentials; its requests will fail", "provider", p)
	}

	tr := tracker.New()
	reg, err := providers.NewRegistry(&appCfg.Providers, tr)
	if err != nil {
		return fmt.Errorf("failed to build provider registry: %w", err)
	}

	srv := api.NewServer(&appCfg.Server,
		api.NewSynthesisHandler(reg),
		api.NewCatalogHandler(reg),
		api.NewStatsHandler(tr),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
