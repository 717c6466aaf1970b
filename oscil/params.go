package oscil

// Cells fixes the number of cells in the table an Oscil reads. It must be a
// power of two: indices wrap by masking with Cells()-1.
type Cells interface {
	Cells() uint32
}

// Rate fixes how many times per second an Oscil is advanced.
type Rate interface {
	Rate() uint32
}

type (
	Cells256  struct{}
	Cells512  struct{}
	Cells1024 struct{}
	Cells2048 struct{}
	Cells8192 struct{}
)

func (Cells256) Cells() uint32  { return 256 }
func (Cells512) Cells() uint32  { return 512 }
func (Cells1024) Cells() uint32 { return 1024 }
func (Cells2048) Cells() uint32 { return 2048 }
func (Cells8192) Cells() uint32 { return 8192 }

// AudioRate is for oscillators advanced once per output sample.
type AudioRate struct{}

// Rate returns 16384.
func (AudioRate) Rate() uint32 { return 16384 }

// ControlRate is for oscillators advanced once per control step.
type ControlRate struct{}

// Rate returns 64.
func (ControlRate) Rate() uint32 { return 64 }

// IsPow2 reports whether n is a power of two. Oscil never checks its table
// length; callers that take lengths from user input should.
func IsPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
