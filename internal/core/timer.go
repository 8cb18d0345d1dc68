package core

import "time"

// ColumnPacer meters how many grid columns a progressive reveal may uncover,
// advancing at a steady columns-per-second rate.
type ColumnPacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewColumnPacer constructs a pacer revealing cps columns per second.
func NewColumnPacer(cps int) *ColumnPacer {
	p := &ColumnPacer{now: time.Now}
	p.SetRate(cps)
	return p
}

// SetRate changes the reveal rate. Non-positive rates fall back to 60.
func (p *ColumnPacer) SetRate(cps int) {
	if cps <= 0 {
		cps = 60
	}
	p.step = time.Second / time.Duration(cps)
}

// Reset forgets accumulated time so the next Advance starts from zero.
func (p *ColumnPacer) Reset() {
	p.accumulator = 0
	p.last = time.Time{}
}

// Advance reports how many columns became due since the previous call.
func (p *ColumnPacer) Advance() int {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := int(p.accumulator / p.step)
	p.accumulator -= time.Duration(n) * p.step
	return n
}
