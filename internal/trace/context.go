package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
	fileKey   struct{}
)

// FromContext returns the Tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches a Tracer to context. nil detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext identifies the enclosing span of new events.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the innermost span started through Start.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}

// fileExtraKey: ключ Extra, под которым лежит путь из WithFile.
const fileExtraKey = "file"

// WithFile tags every span and point started under ctx with the input path.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey{}, path)
}

// FileOf returns the path set by WithFile.
func FileOf(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(fileKey{}).(string)
	return path
}

func contextExtra(ctx context.Context) map[string]string {
	if path := FileOf(ctx); path != "" {
		return map[string]string{fileExtraKey: path}
	}
	return nil
}
