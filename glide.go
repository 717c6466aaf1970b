package main

import "github.com/lozord/dreamrug-osc/oscil"

// lineBits is the extra precision a Line keeps below the Q16n16 unit so that
// slow slides still move.
const lineBits = 16

// Line slides linearly from one phase increment to another in a fixed number
// of steps. Endpoints come from Oscil.PhaseIncFromHz; each step is stored with
// Oscil.SetPhaseInc.
type Line struct {
	value     int64
	step      int64
	target    oscil.Q16n16
	remaining int
}

// NewLine returns a Line that reaches to after steps calls to Next. With
// steps <= 0 it sits at to.
func NewLine(from, to oscil.Q16n16, steps int) *Line {
	l := &Line{
		value:     int64(from) << lineBits,
		target:    to,
		remaining: max(steps, 0),
	}
	if l.remaining == 0 {
		l.value = int64(to) << lineBits
		return l
	}
	l.step = ((int64(to) - int64(from)) << lineBits) / int64(steps)
	return l
}

// Next advances one step and returns the new value. The last step lands on
// the target exactly.
func (l *Line) Next() oscil.Q16n16 {
	if l.remaining > 0 {
		l.remaining--
		l.value += l.step
		if l.remaining == 0 {
			l.value = int64(l.target) << lineBits
		}
	}
	return oscil.Q16n16(l.value >> lineBits)
}

// Done reports whether the target has been reached.
func (l *Line) Done() bool { return l.remaining == 0 }
