package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/openkcm/common-sdk/pkg/otlp"

	slogctx "github.com/veqryn/slog-context"

	root "github.com/openkcm/tzlabel"
	"github.com/openkcm/tzlabel/internal/config"
)

func main() {
	ctx := context.Background()

	cfg := loadConfig()
	err := cfg.Validate()
	handleErr("validating config", err)

	initLogger(cfg)

	initOTLP(ctx, cfg)

	ctx = slogctx.Append(ctx, "runID", uuid.NewString())

	err = newRootCmd(cfg).ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func initOTLP(ctx context.Context, cfg *config.Config) {
	err := otlp.Init(ctx, &cfg.Application, &cfg.Telemetry, &cfg.Logger, otlp.WithLogger(slog.Default()))
	handleErr("starting OpenTelemetry", err)
}

func initLogger(cfg *config.Config) {
	err := logger.InitAsDefault(cfg.Logger, cfg.Application)
	handleErr("initializing logger", err)
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error %s: %v", msg, err)
	}
}

func loadConfig() *config.Config {
	cfg := &config.Config{}
	loader := commoncfg.NewLoader(cfg,
		commoncfg.WithPaths(
			"/etc/tzlabel",
			"."),
		commoncfg.WithEnvOverride(""))
	err := loader.LoadConfig()
	handleErr("loading config", err)

	err = commoncfg.UpdateConfigVersion(&cfg.BaseConfig, root.BuildVersion)
	handleErr("loading build version into config", err)

	return cfg
}
