package tables

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
	log "github.com/golang/glog"

	"github.com/lozord/dreamrug-osc/oscil"
)

// LoadWAV reads a single-cycle waveform from a PCM WAV file. Only the first
// channel is used, requantised to 8 bits. The file must hold exactly n frames.
func LoadWAV(file string, n int) (oscil.Samples, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open table at %q: %w", file, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%q is not a valid WAV file", file)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", file, err)
	}

	chans := buf.Format.NumChannels
	if chans < 1 {
		chans = 1
	}
	frames := len(buf.Data) / chans
	if frames != n {
		return nil, fmt.Errorf("table %q has %d frames, want %d", file, frames, n)
	}

	depth := int(d.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("table %q has unsupported bit depth %d", file, depth)
	}
	s := make(oscil.Samples, n)
	for i := range s {
		v := buf.Data[i*chans]
		if depth == 8 {
			// 8 bit WAV is unsigned
			v -= 128
		} else {
			v >>= depth - 8
		}
		s[i] = int8(max(-128, min(127, v)))
	}
	log.V(1).Infof("loaded %d cell table from %q (%d bit, %d channels)", n, file, depth, chans)
	return s, nil
}
