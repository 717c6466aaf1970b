// Package oscil implements a fixed-point wavetable oscillator using direct
// digital synthesis: a phase accumulator is advanced by a phase increment on
// every call and the integer part of the phase indexes the table.
//
// An Oscil is driven from two contexts. A producer calls Next, PhMod or
// AtIndex at the update rate; a control context changes pitch at any time
// with SetFreq, SetFreqInt, SetFreqN8 or SetPhaseInc. The phase increment is
// the only state both touch and every write to it is a single atomic store,
// so the producer always sees either the old or the new increment in full.
// Everything else belongs to the producer.
//
// Nothing in this package reports errors. A table length that is not a power
// of two, or a frequency large enough to overflow the 32 bit increment,
// produces wrong samples rather than a failure.
package oscil

import (
	"math"
	"sync/atomic"
)

// Oscil plays a wavetable of N cells, advanced R times per second.
type Oscil[N Cells, R Rate] struct {
	table Table

	// phase is only touched by the producer.
	phase Q16n16
	inc   atomic.Uint32
}

// New returns an Oscil reading from table. The phase starts at zero and the
// oscillator is silent until a frequency is set.
func New[N Cells, R Rate](table Table) *Oscil[N, R] {
	return &Oscil[N, R]{table: table}
}

func (o *Oscil[N, R]) cells() uint32 {
	var n N
	return n.Cells()
}

func (o *Oscil[N, R]) rate() uint32 {
	var r R
	return r.Rate()
}

func (o *Oscil[N, R]) mask() uint32 {
	return o.cells() - 1
}

// Next advances the phase by the current increment and returns the sample
// at the new position.
func (o *Oscil[N, R]) Next() int8 {
	o.phase += Q16n16(o.inc.Load())
	return o.table.At(o.phase.Int() & o.mask())
}

// PhMod advances the phase like Next, then returns the sample at the phase
// shifted by pm table lengths. The shift does not accumulate: only the
// increment is added to the stored phase. PhMod(0) behaves exactly like Next.
//
// pm is nominally in [-1, 1]; larger values wrap around the table.
func (o *Oscil[N, R]) PhMod(pm Q15n16) int8 {
	o.phase += Q16n16(o.inc.Load())
	shift := uint32(int32(pm) * int32(o.cells()))
	return o.table.At((uint32(o.phase)+shift)>>FracBits&o.mask())
}

// AtIndex returns the sample at index, wrapped into the table. It does not
// read or change the phase.
func (o *Oscil[N, R]) AtIndex(index uint32) int8 {
	return o.table.At(index & o.mask())
}

// SetFreqN8 sets the frequency from a Q24n8 value. It avoids floating point
// and handles fractional frequencies, but overflows for high frequencies with
// large tables: frequency*N must fit in 32 bits.
func (o *Oscil[N, R]) SetFreqN8(frequency Q24n8) {
	inc := (uint32(frequency) * o.cells() / o.rate()) << (FracBits - n8Bits)
	o.inc.Store(inc)
}

// SetFreqInt sets the frequency in whole Hz. The division happens before
// the shift, so the result is exact only when frequency*N is a multiple of
// R; use SetFreq when it is not.
func (o *Oscil[N, R]) SetFreqInt(frequency uint32) {
	o.SetPhaseInc(o.PhaseIncFromFreq(frequency))
}

// SetFreq sets the frequency in Hz. This is the most accurate setter and
// the one to use for fractional or very low frequencies.
func (o *Oscil[N, R]) SetFreq(frequency float64) {
	o.SetPhaseInc(o.PhaseIncFromHz(frequency))
}

// PhaseIncFromFreq returns the increment SetFreqInt would store for
// frequency, without storing it.
//
// Together with SetPhaseInc this lets a caller slide between two pitches by
// interpolating raw increments instead of recomputing each one.
func (o *Oscil[N, R]) PhaseIncFromFreq(frequency uint32) Q16n16 {
	return Q16n16((frequency * o.cells() / o.rate()) << FracBits)
}

// PhaseIncFromHz returns the increment SetFreq would store for frequency,
// rounded to the nearest unit.
func (o *Oscil[N, R]) PhaseIncFromHz(frequency float64) Q16n16 {
	return Q16n16(math.Round(float64(o.cells()) * frequency / float64(o.rate()) * FracOne))
}

// SetPhaseInc stores a precomputed increment.
func (o *Oscil[N, R]) SetPhaseInc(inc Q16n16) {
	o.inc.Store(uint32(inc))
}

// PhaseInc returns the current increment. Safe from any goroutine.
func (o *Oscil[N, R]) PhaseInc() Q16n16 {
	return Q16n16(o.inc.Load())
}

// Phase returns the phase accumulator. Only the producer may call it.
func (o *Oscil[N, R]) Phase() Q16n16 {
	return o.phase
}
