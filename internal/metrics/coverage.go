package metrics

// Coverage is the fraction of records that could be compared.
type Coverage struct {
	name    string
	ok      int
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(r Record) {
	c.samples++
	if r.Status == StatusOK {
		c.ok++
	}
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.ok) / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.ok = 0
	c.samples = 0
}

// WithinTolerance is the fraction of comparable records whose relative
// error stays at or below threshold percent.
type WithinTolerance struct {
	name      string
	threshold float64
	within    int
	samples   int
}

func NewWithinTolerance(threshold float64) *WithinTolerance {
	return &WithinTolerance{
		name:      "within_tolerance",
		threshold: threshold,
	}
}

func (w *WithinTolerance) Name() string { return w.name }

func (w *WithinTolerance) Samples() int { return w.samples }

func (w *WithinTolerance) Observe(r Record) {
	if r.Status != StatusOK {
		return
	}
	w.samples++
	if r.RelErrPct <= w.threshold {
		w.within++
	}
}

func (w *WithinTolerance) Value() float64 {
	if w.samples == 0 {
		return 1.0
	}
	return float64(w.within) / float64(w.samples)
}

func (w *WithinTolerance) Reset() {
	w.within = 0
	w.samples = 0
}
