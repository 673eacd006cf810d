package main

import (
	"fmt"
	"time"

	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	root "github.com/openkcm/tzlabel"
	"github.com/openkcm/tzlabel/internal/config"
	"github.com/openkcm/tzlabel/internal/datefmt"
	"github.com/openkcm/tzlabel/internal/locale"
	"github.com/openkcm/tzlabel/internal/zonename"
)

// app carries the loaded configuration and the global flag values.
type app struct {
	cfg      *config.Config
	timezone string
	locale   string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:          "tzlabel",
		Short:        "Format timestamps as local time with a timezone label.",
		Version:      fmt.Sprintf("v%s", root.Version),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.timezone, "timezone", cfg.Formatter.Timezone,
		"IANA timezone to render in, \"Local\" for the process timezone")
	rootCmd.PersistentFlags().StringVar(&a.locale, "locale", cfg.Formatter.LocaleOrDefault(),
		"BCP-47 locale used for the timezone label")

	rootCmd.AddCommand(
		newFormatCmd(a),
		newLabelCmd(a),
		newMCPCmd(a),
	)

	return rootCmd
}

// location returns the timezone given by the --timezone flag, which must be valid.
// Without the flag the configured timezone is used, falling back to UTC.
func (a *app) location(cmd *cobra.Command) (*time.Location, error) {
	if !cmd.Flags().Changed("timezone") {
		return a.cfg.Formatter.LocationOrUTC(cmd.Context()), nil
	}

	tz := config.Formatter{Timezone: a.timezone}

	return tz.Location()
}

// formatter builds a formatter from the configuration and flags.
func (a *app) formatter(cmd *cobra.Command) (*datefmt.Formatter, error) {
	ctx := cmd.Context()

	loc, err := a.location(cmd)
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(
		a.cfg.Application.Name,
		metric.WithInstrumentationVersion(otel.Version()),
		metric.WithInstrumentationAttributes(otlp.CreateAttributesFrom(a.cfg.Application)...),
	)

	meters, err := datefmt.InitMeters(ctx, &a.cfg.Application, meter)
	if err != nil {
		return nil, err
	}

	resolver := zonename.NewResolver(locale.DefaultCatalog())

	return datefmt.New(resolver,
		datefmt.WithLocation(loc),
		datefmt.WithMeters(meters),
	), nil
}
