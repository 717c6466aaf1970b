// Package tables builds and loads the int8 wavetables played by oscil.
package tables

import (
	"fmt"
	"math"

	"github.com/lozord/dreamrug-osc/oscil"
)

// Generator fills a table of n cells.
type Generator func(n int) (oscil.Samples, error)

var generators = map[string]Generator{
	"sine":     Sine,
	"saw":      Saw,
	"square":   Square,
	"triangle": Triangle,
}

// ByName returns the table for one of the built-in waveform names.
func ByName(name string, n int) (oscil.Samples, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown waveform %q", name)
	}
	return g(n)
}

// Known reports whether name is a built-in waveform.
func Known(name string) bool {
	_, ok := generators[name]
	return ok
}

func checkSize(n int) error {
	if n <= 0 || uint64(n) > math.MaxUint32 || !oscil.IsPow2(uint32(n)) {
		return fmt.Errorf("table size must be a power of two, got %d", n)
	}
	return nil
}

// build evaluates f over one cycle, f taking a phase in [0, 1) and returning
// a value in [-1, 1].
func build(n int, f func(phase float64) float64) (oscil.Samples, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	s := make(oscil.Samples, n)
	for i := range s {
		s[i] = quantize(f(float64(i) / float64(n)))
	}
	return s, nil
}

func quantize(v float64) int8 {
	v = math.Round(v * 127)
	return int8(max(-128, min(127, v)))
}

// Sine returns one cycle of a sine wave.
func Sine(n int) (oscil.Samples, error) {
	return build(n, func(p float64) float64 { return math.Sin(2 * math.Pi * p) })
}

// Saw returns one cycle of a rising sawtooth, starting at zero.
func Saw(n int) (oscil.Samples, error) {
	return build(n, func(p float64) float64 {
		if p < 0.5 {
			return 2 * p
		}
		return 2*p - 2
	})
}

// Square returns one cycle of a square wave, high for the first half.
func Square(n int) (oscil.Samples, error) {
	return build(n, func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	})
}

// Triangle returns one cycle of a triangle wave, starting at zero.
func Triangle(n int) (oscil.Samples, error) {
	return build(n, func(p float64) float64 {
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	})
}
