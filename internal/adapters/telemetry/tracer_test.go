package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/cfgtrack/internal/adapters/telemetry"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerWithProvider(tp, telemetry.InstrumentationName), recorder
}

func TestOTelTracer_Spans(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "resolve")
	parent.SetAttribute("key", ".babelrc@src")
	parent.SetAttribute("names", []string{".babelrc"})
	parent.SetAttribute("count", 2)
	parent.SetAttribute("raw", false)
	parent.SetAttribute("other", struct{ A int }{A: 1})

	_, child := tracer.Start(ctx, "discover")
	child.RecordError(errors.New("boom"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	discover, resolve := spans[0], spans[1]
	assert.Equal(t, "discover", discover.Name())
	assert.Equal(t, resolve.SpanContext().SpanID(), discover.Parent().SpanID())
	assert.Equal(t, codes.Error, discover.Status().Code)
	assert.Equal(t, "boom", discover.Status().Description)

	assert.Equal(t, "resolve", resolve.Name())
	assert.Contains(t, resolve.Attributes(), attribute.String("key", ".babelrc@src"))
	assert.Contains(t, resolve.Attributes(), attribute.StringSlice("names", []string{".babelrc"}))
	assert.Contains(t, resolve.Attributes(), attribute.Int("count", 2))
	assert.Contains(t, resolve.Attributes(), attribute.Bool("raw", false))
	assert.Contains(t, resolve.Attributes(), attribute.String("other", "{1}"))
}

func TestOTelSpan_RecordNilError(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "ok")
	span.RecordError(nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}
