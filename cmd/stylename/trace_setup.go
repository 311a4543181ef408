package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"stylename/internal/trace"
)

type traceFlags struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
	levelSet  bool
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var tf traceFlags
	var errs []error
	str := func(name string, dst *string) {
		v, err := pf.GetString(name)
		errs = append(errs, err)
		*dst = v
	}
	str("trace", &tf.output)
	str("trace-level", &tf.level)
	str("trace-mode", &tf.mode)
	str("trace-format", &tf.format)
	var err error
	tf.ringSize, err = pf.GetInt("trace-ring-size")
	errs = append(errs, err)
	tf.heartbeat, err = pf.GetDuration("trace-heartbeat")
	errs = append(errs, err)
	tf.levelSet = pf.Changed("trace-level")
	if err := errors.Join(errs...); err != nil {
		return traceFlags{}, fmt.Errorf("trace flags: %w", err)
	}
	return tf, nil
}

// setupTracing installs the tracer into the command context and opens the
// driver span for the command. cleanup closes both.
func setupTracing(cmd *cobra.Command) (cleanup func(), err error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && tf.output != "" && !tf.levelSet {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(contextOf(cmd), trace.Nop))
		return func() {}, nil
	}
	mode, err := trace.ParseMode(tf.mode)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(tf.format)
	if err != nil {
		return nil, err
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Heartbeat:  tf.heartbeat,
	}
	if tf.output == "" || tf.output == "-" {
		// без Close: stderr остаётся открытым
		cfg.Output = struct{ io.Writer }{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create tracer: %w", err)
	}

	ctx, span := trace.Start(trace.WithTracer(contextOf(cmd), tracer), trace.ScopeDriver, cmd.Name())
	cmd.SetContext(ctx)
	heartbeat := trace.StartHeartbeat(tracer, tf.heartbeat)

	return func() {
		heartbeat.Stop()
		span.End("")
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

// dumpTrace writes the ring buffer, if tracing keeps one, after a failure.
func dumpTrace(ctx context.Context, w io.Writer) {
	ring, ok := trace.Ring(trace.FromContext(ctx))
	if !ok || ring.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "trace: last %d events\n", ring.Len())
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
