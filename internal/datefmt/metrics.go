package datefmt

import (
	"context"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/openkcm/tzlabel/internal/zonename"
)

const (
	AttrOutcome      = "outcome"
	AttrTier         = "tier"
	ErrDomainMetrics = "metrics"
)

const (
	OutcomeFormatted = "formatted"
	OutcomeEmpty     = "empty"
	OutcomeInvalid   = "invalid"
)

func InitMeters(ctx context.Context, cfgApp *commoncfg.Application, meter metric.Meter) (*Meters, error) {
	formattedCtr, err := meter.Int64Counter(
		"timestamps.formatted",
		metric.WithDescription("Counter of timestamp format requests, partitioned by outcome"),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating timestamps.formatted meter")
	}

	resolvedCtr, err := meter.Int64Counter(
		"zonenames.resolved",
		metric.WithDescription("Counter of resolved timezone labels, partitioned by resolution tier"),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating zonenames.resolved meter")
	}

	formatDurations, err := meter.Float64Histogram(
		"timestamps.format_duration",
		metric.WithDescription("Duration of timestamp format requests in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating timestamps.format_duration meter")
	}

	return &Meters{
		application:     cfgApp,
		formattedCtr:    formattedCtr,
		resolvedCtr:     resolvedCtr,
		formatDurations: formatDurations,
	}, nil
}

// Meters records formatter metrics. A nil *Meters records nothing.
type Meters struct {
	application     *commoncfg.Application
	formattedCtr    metric.Int64Counter
	resolvedCtr     metric.Int64Counter
	formatDurations metric.Float64Histogram
}

func (m *Meters) handleFormat(ctx context.Context, outcome string, start time.Time) {
	if m == nil {
		return
	}

	elapsedTime := float64(time.Since(start)) / float64(time.Millisecond)
	attrs := m.attributes(attribute.String(AttrOutcome, outcome))

	m.formattedCtr.Add(ctx, 1, attrs)
	m.formatDurations.Record(ctx, elapsedTime, attrs)
}

func (m *Meters) handleResolve(ctx context.Context, tier zonename.Tier) {
	if m == nil {
		return
	}

	m.resolvedCtr.Add(ctx, 1, m.attributes(attribute.String(AttrTier, tier.String())))
}

func (m *Meters) attributes(attrs ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(otlp.CreateAttributesFrom(*m.application, attrs...)...)
}
