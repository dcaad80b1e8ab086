package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/flinker/rx"
)

// RxMetrics counts publisher lifecycle events. It implements rx.Observer;
// install it with rx.SetObserver or per publisher with rx.WithObserver.
type RxMetrics struct {
	created      metric.Int64Counter
	emitted      metric.Int64Counter
	fanout       metric.Int64Histogram
	subscribed   metric.Int64Counter
	unsubscribed metric.Int64Counter
}

var _ rx.Observer = (*RxMetrics)(nil)

// NewRxMetrics creates publisher instruments on the given meter.
func NewRxMetrics(meter metric.Meter) (*RxMetrics, error) {
	created, err := meter.Int64Counter("rx.publisher.created",
		metric.WithDescription("Publishers created by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rx.publisher.created counter: %w", err)
	}

	emitted, err := meter.Int64Counter("rx.publisher.emitted",
		metric.WithDescription("Events broadcast by kind and event"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rx.publisher.emitted counter: %w", err)
	}

	fanout, err := meter.Int64Histogram("rx.publisher.fanout",
		metric.WithDescription("Pipelines reached per broadcast"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rx.publisher.fanout histogram: %w", err)
	}

	subscribed, err := meter.Int64Counter("rx.pipeline.subscribed",
		metric.WithDescription("Pipelines activated by publisher kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rx.pipeline.subscribed counter: %w", err)
	}

	unsubscribed, err := meter.Int64Counter("rx.pipeline.unsubscribed",
		metric.WithDescription("Pipelines detached by publisher kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rx.pipeline.unsubscribed counter: %w", err)
	}

	return &RxMetrics{
		created:      created,
		emitted:      emitted,
		fanout:       fanout,
		subscribed:   subscribed,
		unsubscribed: unsubscribed,
	}, nil
}

func (m *RxMetrics) Created(kind string) {
	m.created.Add(context.Background(), 1, kindAttr(kind))
}

func (m *RxMetrics) Emitted(kind string, event rx.EventKind, fanout int) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("event", event.String()),
	)
	m.emitted.Add(ctx, 1, attrs)
	m.fanout.Record(ctx, int64(fanout), attrs)
}

func (m *RxMetrics) Subscribed(kind string) {
	m.subscribed.Add(context.Background(), 1, kindAttr(kind))
}

func (m *RxMetrics) Unsubscribed(kind string) {
	m.unsubscribed.Add(context.Background(), 1, kindAttr(kind))
}

func kindAttr(kind string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("kind", kind))
}
