package oscil

// Table is the read primitive an Oscil fetches samples through. Offsets passed
// to At are already masked into [0, cells).
//
// The table is borrowed: an Oscil never writes to it and the table must stay
// valid for as long as the Oscil is used.
type Table interface {
	At(offset uint32) int8
}

// Samples is a table held in ordinary memory.
type Samples []int8

// At returns s[offset].
func (s Samples) At(offset uint32) int8 { return s[offset] }

// ROM is a table stored in a string, which the linker places in read-only
// data when it is a constant. Each byte is one two's complement sample.
type ROM string

// At returns the byte at offset reinterpreted as a signed sample.
func (r ROM) At(offset uint32) int8 { return int8(r[offset]) }

// TableFunc adapts a function to the Table interface, for tables that live
// behind some other access mechanism.
type TableFunc func(offset uint32) int8

// At calls f(offset).
func (f TableFunc) At(offset uint32) int8 { return f(offset) }
