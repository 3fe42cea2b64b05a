package metrics

import "math"

// MeanError averages the relative error over comparable records.
type MeanError struct {
	name    string
	total   float64
	samples int
}

func NewMeanError() *MeanError {
	return &MeanError{name: "mean_error_pct"}
}

func (m *MeanError) Name() string { return m.name }

func (m *MeanError) Observe(r Record) {
	if r.Status != StatusOK {
		return
	}
	m.total += r.RelErrPct
	m.samples++
}

func (m *MeanError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanError) Samples() int { return m.samples }

func (m *MeanError) Reset() {
	m.total = 0
	m.samples = 0
}

// MaxError tracks the worst relative error.
type MaxError struct {
	name    string
	max     float64
	samples int
}

func NewMaxError() *MaxError {
	return &MaxError{name: "max_error_pct"}
}

func (m *MaxError) Name() string { return m.name }

func (m *MaxError) Observe(r Record) {
	if r.Status != StatusOK {
		return
	}
	m.max = math.Max(m.max, r.RelErrPct)
	m.samples++
}

func (m *MaxError) Value() float64 {
	return m.max
}

func (m *MaxError) Samples() int { return m.samples }

func (m *MaxError) Reset() {
	m.max = 0
	m.samples = 0
}

// FinalError is the relative error at the last comparable record.
type FinalError struct {
	name  string
	last  float64
	valid bool
}

func NewFinalError() *FinalError {
	return &FinalError{name: "final_error_pct"}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) Observe(r Record) {
	if r.Status != StatusOK {
		return
	}
	f.last = r.RelErrPct
	f.valid = true
}

func (f *FinalError) Value() float64 {
	return f.last
}

func (f *FinalError) Samples() int {
	if f.valid {
		return 1
	}
	return 0
}

func (f *FinalError) Reset() {
	f.last = 0
	f.valid = false
}
