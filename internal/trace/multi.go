package trace

import "errors"

// MultiTracer fans out trace events; used for --trace-mode=both.
type MultiTracer struct {
	sinks []Tracer
	level Level
}

// NewMultiTracer drops nil sinks.
func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Emit gives every sink its own event, Extra included.
func (m *MultiTracer) Emit(ev *Event) {
	for _, s := range m.sinks {
		cp := *ev
		cp.Extra = copyExtra(ev.Extra)
		s.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	errs := make([]error, 0, len(m.sinks))
	for _, s := range m.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	errs := make([]error, 0, len(m.sinks))
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff && len(m.sinks) > 0 }
