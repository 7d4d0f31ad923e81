package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"xdao.co/paint/api"
	"xdao.co/paint/canvas"
	"xdao.co/paint/document"
	"xdao.co/paint/mint"
	"xdao.co/paint/observability"
	"xdao.co/paint/storage/registry"
	"xdao.co/paint/template"

	_ "xdao.co/paint/storage/grpcstore"
	_ "xdao.co/paint/storage/localfs"
	_ "xdao.co/paint/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, errOut io.Writer) int {
	fs := flag.NewFlagSet("paintd", flag.ContinueOnError)
	fs.SetOutput(errOut)
	configPath := fs.String("config", "", "TOML config file")
	listen := fs.String("listen", "", "Listen address (overrides config)")
	preferred := fs.String("store-preferred", "", "Backend name or id that receives writes under write_policy=first")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := defaultServiceConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadServiceConfig(*configPath); err != nil {
			fmt.Fprintf(errOut, "paintd: %v\n", err)
			return 2
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	logger := observability.InitLogger("paintd", cfg.LogLevel)

	wrapper, err := loadWrapper(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("load template")
		return 1
	}

	store, closeStore, err := cfg.Store.Open(registry.UsageDaemon, *preferred)
	if err != nil {
		logger.Error().Err(err).Msg("open store")
		return 1
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn().Err(err).Msg("close store")
			}
		}()
	}

	svc, err := canvas.New(store, mint.KeccakSource{Seed: []byte(cfg.TraitSeed)}, canvas.Options{
		Collection: cfg.Collection,
		Wrapper:    wrapper,
		Logger:     logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("canvas")
		return 1
	}

	srv := api.New(svc, api.Options{
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         logger,
		DefaultPNGSize: cfg.PNGSize,
	})
	if err := srv.Serve(ctx, cfg.Listen); err != nil {
		logger.Error().Err(err).Msg("serve")
		return 1
	}
	logger.Info().Msg("stopped")
	return 0
}

func loadWrapper(cfg serviceConfig) (document.Wrapper, error) {
	switch {
	case cfg.TemplateStart != "":
		return template.LoadParts(cfg.TemplateStart, cfg.TemplateEnd)
	case cfg.TemplatePath != "":
		return template.LoadFile(cfg.TemplatePath)
	default:
		return template.Default(), nil
	}
}
