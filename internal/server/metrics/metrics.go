// Package metrics records promise lifecycle counters with OpenTelemetry.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const meterName = "github.com/dmitrijs2005/promisekeeper"

// Recorder holds the instruments. A nil *Recorder records nothing.
type Recorder struct {
	created        metric.Int64Counter
	transitioned   metric.Int64Counter
	reframed       metric.Int64Counter
	collabFailures metric.Int64Counter
	collabLatency  metric.Float64Histogram
}

// NewRecorder creates the instruments on mp.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	m := mp.Meter(meterName)
	r := &Recorder{}
	var err error

	if r.created, err = m.Int64Counter("promisekeeper.promises.created",
		metric.WithDescription("Promises created, including reframe replacements"),
		metric.WithUnit("{promise}"),
	); err != nil {
		return nil, err
	}
	if r.transitioned, err = m.Int64Counter("promisekeeper.promises.transitions",
		metric.WithDescription("Status transitions by target status and cause"),
		metric.WithUnit("{transition}"),
	); err != nil {
		return nil, err
	}
	if r.reframed, err = m.Int64Counter("promisekeeper.promises.reframed",
		metric.WithDescription("Missed promises replaced by a reframe"),
		metric.WithUnit("{promise}"),
	); err != nil {
		return nil, err
	}
	if r.collabFailures, err = m.Int64Counter("promisekeeper.collaborator.failures",
		metric.WithDescription("In-band error replies from the text collaborator"),
		metric.WithUnit("{reply}"),
	); err != nil {
		return nil, err
	}
	if r.collabLatency, err = m.Float64Histogram("promisekeeper.collaborator.duration",
		metric.WithDescription("Collaborator call duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// Nop returns a Recorder backed by the no-op meter provider.
func Nop() *Recorder {
	r, _ := NewRecorder(noop.NewMeterProvider())
	return r
}

func (r *Recorder) PromiseCreated(ctx context.Context, promiseType string) {
	if r == nil {
		return
	}
	r.created.Add(ctx, 1, metric.WithAttributes(attribute.String("promise_type", promiseType)))
}

func (r *Recorder) Transitioned(ctx context.Context, to, cause string) {
	if r == nil {
		return
	}
	r.transitioned.Add(ctx, 1, metric.WithAttributes(
		attribute.String("to", to),
		attribute.String("cause", cause),
	))
}

func (r *Recorder) Reframed(ctx context.Context) {
	if r == nil {
		return
	}
	r.reframed.Add(ctx, 1)
}

// CollaboratorCall records one collaborator round trip for op.
func (r *Recorder) CollaboratorCall(ctx context.Context, op string, took time.Duration, failed bool) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("op", op))
	r.collabLatency.Record(ctx, took.Seconds(), attrs)
	if failed {
		r.collabFailures.Add(ctx, 1, attrs)
	}
}

// NewOTLPProvider builds a MeterProvider exporting to an OTLP/gRPC endpoint
// every interval.
func NewOTLPProvider(ctx context.Context, endpoint string, insecure bool, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	if interval <= 0 {
		interval = 15 * time.Second
	}

	res := resource.NewSchemaless(attribute.String("service.name", "promisekeeper"))
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	), nil
}
