package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metric attribute keys.
var (
	AttrChangeType  = attribute.Key("todo.change_type")
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
)

// Metrics are the instruments shared by the HTTP middleware, the outbound
// client and the todo service.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	TodoChangesTotal      metric.Int64Counter
}

// NewMetrics registers every instrument on a meter named after the service.
func NewMetrics(mp *sdkmetric.MeterProvider, serviceName string) (*Metrics, error) {
	r := registrar{meter: mp.Meter(serviceName)}

	m := &Metrics{
		ServerRequestDuration: r.seconds("http.server.request.duration", "Duration of incoming HTTP requests"),
		ServerRequestTotal:    r.count("http.server.request.total", "Total number of incoming HTTP requests", "{request}"),
		ClientRequestDuration: r.seconds("http.client.request.duration", "Duration of outgoing HTTP requests"),
		ClientRequestTotal:    r.count("http.client.request.total", "Total number of outgoing HTTP requests", "{request}"),
		TodoChangesTotal:      r.count("todo.changes.total", "Total number of committed todo mutations", "{change}"),
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordTodoChange counts one committed todo mutation. Safe on a nil receiver.
func (m *Metrics) RecordTodoChange(ctx context.Context, changeType string) {
	if m == nil {
		return
	}
	m.TodoChangesTotal.Add(ctx, 1, metric.WithAttributes(AttrChangeType.String(changeType)))
}

// registrar collects instrument creation errors so NewMetrics can report
// them all at once.
type registrar struct {
	meter metric.Meter
	errs  []error
}

func (r *registrar) seconds(name, desc string) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	r.note(name, err)
	return h
}

func (r *registrar) count(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	r.note(name, err)
	return c
}

func (r *registrar) note(name string, err error) {
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("creating %s: %w", name, err))
	}
}
