package oscil

import "math"

// FracBits is the number of fractional bits carried by the phase accumulator
// and the phase increment.
const FracBits = 16

// FracOne is 1.0 in the Q16n16 domain.
const FracOne = 1 << FracBits

// n8Bits is the number of fractional bits of a Q24n8 frequency.
const n8Bits = 8

// Q16n16 is an unsigned fixed-point value with 16 integer and 16 fractional
// bits. Arithmetic on it wraps at 2^32.
type Q16n16 uint32

// Int returns the integer part.
func (q Q16n16) Int() uint32 { return uint32(q) >> FracBits }

// Float returns q as a float64.
func (q Q16n16) Float() float64 { return float64(q) / FracOne }

// Q24n8 is an unsigned fixed-point frequency with 8 fractional bits, so 1.5 Hz
// is 384.
type Q24n8 uint32

// Q24n8FromFloat converts f to Q24n8, rounding to the nearest unit.
func Q24n8FromFloat(f float64) Q24n8 {
	return Q24n8(math.Round(f * (1 << n8Bits)))
}

// Q15n16 is a signed fixed-point value with 16 fractional bits. As a phase
// modulation amount, FracOne is one whole table length forward and -FracOne
// one table length back.
type Q15n16 int32

// Q15n16FromFloat converts f to Q15n16, rounding to the nearest unit.
func Q15n16FromFloat(f float64) Q15n16 {
	return Q15n16(math.Round(f * FracOne))
}

// Float returns q as a float64.
func (q Q15n16) Float() float64 { return float64(q) / FracOne }
