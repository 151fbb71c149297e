// Asset build tool: packs sprite atlases, generates the GUI stylesheet, merges
// part definitions, minifies language files and packs missions and mods into dist/.
//
// Usage:
//
//	go run ./cmd/assetpack                    # default steps (everything but mods)
//	go run ./cmd/assetpack all                # every step
//	go run ./cmd/assetpack gui parts          # only the given steps
//	go run ./cmd/assetpack --list             # list available steps
//	go run ./cmd/assetpack -report build.yaml # also write artifact digests
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/udisondev/assetpack/internal/aseprite"
	"github.com/udisondev/assetpack/internal/config"
	"github.com/udisondev/assetpack/internal/pipeline"
	"github.com/udisondev/assetpack/internal/telemetry"
)

const DefaultConfigPath = "config/assetpack.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("interrupted", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	// .env is optional; it usually carries ASEPRITE and OTEL_* settings
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	defaultConfig := DefaultConfigPath
	if p := os.Getenv("ASSETPACK_CONFIG"); p != "" {
		defaultConfig = p
	}

	flags := flag.NewFlagSet("assetpack", flag.ContinueOnError)
	flags.SetOutput(stdout)
	configPath := flags.String("config", defaultConfig, "YAML config file")
	root := flags.String("root", ".", "project root that relative config paths resolve against")
	reportPath := flags.String("report", "", "write a YAML report of written artifacts")
	list := flags.Bool("list", false, "list available steps")
	if err := flags.Parse(args); err != nil {
		return err
	}

	registry := pipeline.Standard()
	if *list {
		printList(stdout, registry)
		return nil
	}

	cfg, err := config.LoadPack(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if bin := os.Getenv("ASEPRITE"); bin != "" {
		cfg.Aseprite.Binary = bin
	}
	cfg = cfg.Resolve(*root)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	steps, err := registry.Select(flags.Args())
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("telemetry shutdown", "err", err)
			}
		}()
	}

	env := &pipeline.Env{
		Config: cfg,
		Packer: aseprite.NewPacker(cfg.Aseprite.Binary, cfg.Aseprite.Extension, aseprite.NewExecRunner()),
	}

	report, runErr := pipeline.Run(ctx, env, steps)
	if *reportPath != "" && report != nil {
		if err := pipeline.WriteReport(*reportPath, report); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func printList(w io.Writer, r *pipeline.Registry) {
	steps := r.Steps()
	maxLen := 0
	for _, s := range steps {
		if len(s.Name) > maxLen {
			maxLen = len(s.Name)
		}
	}

	fmt.Fprintln(w, "Available steps (run order):")
	for _, s := range steps {
		padding := strings.Repeat(" ", maxLen-len(s.Name)+2)
		marker := ""
		if !s.Default {
			marker = " [only with 'all' or by name]"
		}
		fmt.Fprintf(w, "  %s%s%s%s\n", s.Name, padding, s.Desc, marker)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
