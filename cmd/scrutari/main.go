package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/app"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/server"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
	sourceDir   = flag.String("source", "", "Source directory for ingest (overrides config)")
	reportOut   = flag.String("out", "report.pdf", "Output path for the report command")
	showVersion = flag.Bool("version", false, "Print version information")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scrutari [flags] [command]

Commands:
  serve      Run the HTTP server (default)
  ingest     Load PDFs from the source directory into storage
  clean      Strip noise from page text and rebuild the search index
  classify   Assign document types and interest scores
  condense   Strip boilerplate and reclassify from condensed text
  index      Rebuild the full-text search index
  enrich     Summarize and rank high-interest documents via LLM
  report     Generate the public-figures PDF report
  pipeline   Run ingest, clean, classify, condense and index in order

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("Scrutari version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup order: config (defaults -> file -> env -> flags), logger,
	// banner, then the requested command.
	path := *configFile
	if path == "" {
		if _, err := os.Stat("scrutari.toml"); err == nil {
			path = "scrutari.toml"
		}
	}

	config, err := common.LoadFromFile(path)
	if err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Failed to load configuration")
	}

	common.ApplyFlagOverrides(config, *serverPort, *serverHost)
	if *sourceDir != "" {
		config.Ingest.SourceDir = *sourceDir
	}

	logger := common.SetupLogger(config)
	common.PrintBanner(common.GetVersion())

	command := flag.Arg(0)
	if command == "" {
		command = "serve"
	}

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	ctx, cancel := signalContext()
	defer cancel()

	if err := run(ctx, command, config, application, logger); err != nil {
		logger.Fatal().Err(err).Str("command", command).Msg("Command failed")
	}
}

func run(ctx context.Context, command string, config *common.Config, application *app.App, logger arbor.ILogger) error {
	switch command {
	case "serve":
		return serve(ctx, application, logger)
	case "ingest":
		_, err := application.IngestService.Run(ctx, config.Ingest.SourceDir)
		return err
	case "clean":
		_, err := application.CleanService.Run(ctx)
		return err
	case "classify":
		_, err := application.ClassifyService.Run(ctx)
		return err
	case "condense":
		_, err := application.CondenseService.Run(ctx)
		return err
	case "index":
		indexed, err := application.StorageManager.SearchIndex().Rebuild(ctx)
		if err == nil {
			logger.Info().Int("pages", indexed).Msg("Index rebuild complete")
		}
		return err
	case "enrich":
		if application.EnrichService == nil {
			return fmt.Errorf("enrichment requires an LLM API key")
		}
		_, err := application.EnrichService.Run(ctx)
		return err
	case "report":
		if application.ReportService == nil {
			return fmt.Errorf("report generation requires an LLM API key")
		}
		people, err := application.ReportService.Generate(ctx, *reportOut)
		if err == nil {
			logger.Info().Int("people", len(people)).Str("output", *reportOut).Msg("Report generated")
		}
		return err
	case "pipeline":
		return pipeline(ctx, config, application)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// pipeline runs the full processing chain in order. Each stage is
// idempotent, so a failed run can simply be repeated.
func pipeline(ctx context.Context, config *common.Config, application *app.App) error {
	if _, err := application.IngestService.Run(ctx, config.Ingest.SourceDir); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if _, err := application.CleanService.Run(ctx); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if _, err := application.ClassifyService.Run(ctx); err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	if _, err := application.CondenseService.Run(ctx); err != nil {
		return fmt.Errorf("condense: %w", err)
	}
	if _, err := application.StorageManager.SearchIndex().Rebuild(ctx); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

func serve(ctx context.Context, application *app.App, logger arbor.ILogger) error {
	if err := application.StartScheduler(); err != nil {
		return err
	}

	srv := server.New(application)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", application.Config.Server.Host, application.Config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	return ctx, cancel
}
