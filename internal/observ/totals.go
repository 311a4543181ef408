package observ

import "sync"

// Totals sums per-file reports by phase name, keeping first-seen order.
// Safe for concurrent use.
type Totals struct {
	mu    sync.Mutex
	order []string
	sum   map[string]float64
	files int
}

func NewTotals() *Totals {
	return &Totals{sum: make(map[string]float64)}
}

func (t *Totals) Add(r Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files++
	for _, p := range r.Phases {
		if _, ok := t.sum[p.Name]; !ok {
			t.order = append(t.order, p.Name)
		}
		t.sum[p.Name] += p.DurationMS
	}
}

// Files is the number of reports added.
func (t *Totals) Files() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.files
}

// Report returns the summed phases.
func (t *Totals) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{Phases: make([]PhaseReport, 0, len(t.order))}
	for _, name := range t.order {
		r.Phases = append(r.Phases, PhaseReport{Name: name, DurationMS: t.sum[name]})
		r.TotalMS += t.sum[name]
	}
	return r
}
