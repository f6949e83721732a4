package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/BaSui01/agentflow/llmcore"

// Metrics publishes OpenTelemetry counters and histograms for
// streaming completion requests. It carries no tracer: request-level
// tracing lives with the caller's own span, if any.
type Metrics struct {
	meter metric.Meter

	requestTotal   metric.Int64Counter
	tokenTotal     metric.Int64Counter
	errorTotal     metric.Int64Counter
	overflowTotal  metric.Int64Counter
	activeRequests metric.Int64UpDownCounter

	requestDuration metric.Float64Histogram
	tokenCount      metric.Int64Histogram
	costPerRequest  metric.Float64Histogram
}

func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)
	m := &Metrics{meter: meter}

	var err error
	if m.requestTotal, err = meter.Int64Counter("llmcore.request.total",
		metric.WithDescription("Total number of completion requests"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if m.tokenTotal, err = meter.Int64Counter("llmcore.token.total",
		metric.WithDescription("Total tokens consumed"),
		metric.WithUnit("{token}")); err != nil {
		return nil, err
	}
	if m.errorTotal, err = meter.Int64Counter("llmcore.error.total",
		metric.WithDescription("Total number of request errors"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if m.overflowTotal, err = meter.Int64Counter("llmcore.overflow.total",
		metric.WithDescription("Total number of context-overflow errors"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if m.activeRequests, err = meter.Int64UpDownCounter("llmcore.request.active",
		metric.WithDescription("Number of in-flight requests"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if m.requestDuration, err = meter.Float64Histogram("llmcore.request.duration",
		metric.WithDescription("Request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30)); err != nil {
		return nil, err
	}
	if m.tokenCount, err = meter.Int64Histogram("llmcore.token.count",
		metric.WithDescription("Token count per request"),
		metric.WithUnit("{token}"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 2000, 4000, 8000, 16000, 32000)); err != nil {
		return nil, err
	}
	if m.costPerRequest, err = meter.Float64Histogram("llmcore.cost.per_request",
		metric.WithDescription("Estimated cost per request in USD"),
		metric.WithUnit("USD"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5)); err != nil {
		return nil, err
	}

	return m, nil
}

// RequestAttrs identifies the request a set of metrics belongs to.
type RequestAttrs struct {
	Provider string
	Model    string
}

// ResponseAttrs is the outcome recorded once a request finishes.
type ResponseAttrs struct {
	Status          string
	ErrorCode       string
	Overflow        bool
	TokensInput     int
	TokensOutput    int
	Cost            float64
	DurationSeconds float64
}

// StartRequest marks a request as in-flight.
func (m *Metrics) StartRequest(ctx context.Context, attrs RequestAttrs) {
	m.activeRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", attrs.Provider),
		attribute.String("model", attrs.Model)))
}

// EndRequest records the outcome of a completed request.
func (m *Metrics) EndRequest(ctx context.Context, req RequestAttrs, resp ResponseAttrs) {
	common := []attribute.KeyValue{
		attribute.String("provider", req.Provider),
		attribute.String("model", req.Model),
		attribute.String("status", resp.Status),
	}

	m.activeRequests.Add(ctx, -1, metric.WithAttributes(
		attribute.String("provider", req.Provider),
		attribute.String("model", req.Model)))

	m.requestTotal.Add(ctx, 1, metric.WithAttributes(common...))
	m.requestDuration.Record(ctx, resp.DurationSeconds, metric.WithAttributes(common...))

	total := int64(resp.TokensInput + resp.TokensOutput)
	if total > 0 {
		m.tokenTotal.Add(ctx, total, metric.WithAttributes(
			attribute.String("provider", req.Provider), attribute.String("model", req.Model), attribute.String("type", "total")))
		m.tokenTotal.Add(ctx, int64(resp.TokensInput), metric.WithAttributes(
			attribute.String("provider", req.Provider), attribute.String("model", req.Model), attribute.String("type", "input")))
		m.tokenTotal.Add(ctx, int64(resp.TokensOutput), metric.WithAttributes(
			attribute.String("provider", req.Provider), attribute.String("model", req.Model), attribute.String("type", "output")))
		m.tokenCount.Record(ctx, total, metric.WithAttributes(common...))
	}

	if resp.Cost > 0 {
		m.costPerRequest.Record(ctx, resp.Cost, metric.WithAttributes(common...))
	}

	if resp.ErrorCode != "" {
		m.errorTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", req.Provider), attribute.String("model", req.Model), attribute.String("error_code", resp.ErrorCode)))
	}

	if resp.Overflow {
		m.overflowTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", req.Provider), attribute.String("model", req.Model)))
	}
}
