package metrics

// Metric folds a stream of records into a single number.
type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

// Sampler is implemented by metrics that have no value until they have
// observed a comparable record.
type Sampler interface {
	Samples() int
}

// Summarize runs every metric over records from a clean state. Metrics
// that saw nothing to measure are left out.
func Summarize(records []Record, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, r := range records {
			m.Observe(r)
		}
		if s, ok := m.(Sampler); ok && s.Samples() == 0 {
			continue
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the summary metrics attached to every run.
func Defaults() []Metric {
	return []Metric{
		NewMaxError(),
		NewMeanError(),
		NewFinalError(),
		NewCoverage(),
	}
}
