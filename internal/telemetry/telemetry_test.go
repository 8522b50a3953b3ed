package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetup(t *testing.T) {
	tracer := Tracer("test")
	if tracer == nil {
		t.Fatal("Tracer() returned nil")
	}

	_, span := tracer.Start(context.Background(), "test.span")
	defer span.End()

	if span.SpanContext().IsSampled() {
		t.Error("span from the default provider should not be sampled")
	}
}

func TestNewLoggerVerbosity(t *testing.T) {
	logger := NewLogger(1)

	if !logger.V(1).Enabled() {
		t.Error("V(1) should be enabled at verbosity 1")
	}
	if logger.V(2).Enabled() {
		t.Error("V(2) should be disabled at verbosity 1")
	}
}
