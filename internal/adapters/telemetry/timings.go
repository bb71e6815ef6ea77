package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/cfgtrack/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*TimingProcessor)(nil)

// TimingProcessor implements sdktrace.SpanProcessor by logging each finished span
// with its duration, indented by nesting depth.
type TimingProcessor struct {
	logger ports.Logger

	mu    sync.Mutex
	depth map[string]int
}

// NewTimingProcessor returns a processor reporting to logger.
func NewTimingProcessor(logger ports.Logger) *TimingProcessor {
	return &TimingProcessor{logger: logger, depth: make(map[string]int)}
}

// OnStart records the span's nesting depth.
func (p *TimingProcessor) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	p.mu.Lock()
	defer p.mu.Unlock()

	depth := 0
	if parent := s.Parent(); parent.IsValid() {
		depth = p.depth[parent.SpanID().String()] + 1
	}
	p.depth[s.SpanContext().SpanID().String()] = depth
}

// OnEnd logs the span's name and duration.
func (p *TimingProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	id := s.SpanContext().SpanID().String()
	p.mu.Lock()
	depth := p.depth[id]
	delete(p.depth, id)
	p.mu.Unlock()

	line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), s.Name(), s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))
	if s.Status().Code == codes.Error {
		p.logger.Warn(line + " (failed: " + s.Status().Description + ")")
		return
	}
	p.logger.Info(line)
}

// Shutdown does nothing.
func (p *TimingProcessor) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (p *TimingProcessor) ForceFlush(_ context.Context) error {
	return nil
}
