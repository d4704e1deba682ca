package stage

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/koscakluka/ema-avatar/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

type clientMetrics struct {
	framesReceived metric.Int64Counter
	framesDropped  metric.Int64Counter
	acksSent       metric.Int64Counter
	acksForfeited  metric.Int64Counter
	reconnects     metric.Int64Counter
}

func newClientMetrics() clientMetrics {
	var m clientMetrics
	m.framesReceived, _ = meter.Int64Counter("stage.frames.received",
		metric.WithDescription("Frames received from the backend."))
	m.framesDropped, _ = meter.Int64Counter("stage.frames.dropped",
		metric.WithDescription("Frames discarded before being handled."))
	m.acksSent, _ = meter.Int64Counter("stage.acks.sent",
		metric.WithDescription("Waker tokens echoed back to the backend."))
	m.acksForfeited, _ = meter.Int64Counter("stage.acks.forfeited",
		metric.WithDescription("Pending waker tokens dropped without being sent."))
	m.reconnects, _ = meter.Int64Counter("stage.reconnects",
		metric.WithDescription("Reconnect attempts after a lost connection."))
	return m
}
