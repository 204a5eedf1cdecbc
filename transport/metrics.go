package transport

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/catlog/record"
)

const meterName = "github.com/kbukum/catlog"

// Metrics counts records on an OpenTelemetry counter named catlog.records,
// with category, severity and error attributes.
type Metrics struct {
	records metric.Int64Counter
}

// NewMetrics creates the counter on meter. A nil meter uses the global
// meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}
	records, err := meter.Int64Counter("catlog.records",
		metric.WithDescription("Log records accepted by the dispatcher"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating catlog.records counter: %w", err)
	}
	return &Metrics{records: records}, nil
}

func (m *Metrics) Write(rec record.Record) error {
	m.records.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("category", rec.Category().String()),
		attribute.String("severity", rec.Severity().String()),
		attribute.Bool("error", rec.Error() != nil),
	))
	return nil
}
