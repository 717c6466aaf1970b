package main

import (
	"fmt"
	"math"
	"sync/atomic"

	log "github.com/golang/glog"

	"github.com/lozord/dreamrug-osc/oscil"
	"github.com/lozord/dreamrug-osc/tables"
)

type (
	audioOsc   = oscil.Oscil[oscil.Cells2048, oscil.AudioRate]
	controlOsc = oscil.Oscil[oscil.Cells256, oscil.ControlRate]
)

const (
	audioCells = 2048
	lfoCells   = 256
)

var (
	sampleRate  = int(oscil.AudioRate{}.Rate())
	controlRate = int(oscil.ControlRate{}.Rate())
)

// Voice is a two operator FM voice: a modulator oscillator shifts the phase
// of a carrier oscillator. Next is called by the producer at the audio rate
// and Control by the control loop at the control rate, from different
// goroutines.
type Voice struct {
	carrier *audioOsc
	mod     *audioOsc

	// Control-side state.
	glide        *Line
	lfo          *controlOsc
	modRatio     float64
	vibratoDepth float64

	// depth is the peak phase shift as a Q15n16 proportion of the table.
	depth atomic.Int32
}

// NewVoice returns a voice playing table as configured by cfg, with its
// initial pitch already set.
func NewVoice(cfg *VoiceConfig, table, lfoTable oscil.Table) *Voice {
	v := &Voice{
		carrier:      oscil.New[oscil.Cells2048, oscil.AudioRate](table),
		mod:          oscil.New[oscil.Cells2048, oscil.AudioRate](table),
		lfo:          oscil.New[oscil.Cells256, oscil.ControlRate](lfoTable),
		modRatio:     cfg.ModRatio,
		vibratoDepth: cfg.VibratoDepth,
	}
	v.SetModDepth(cfg.ModDepth)

	from := v.carrier.PhaseIncFromHz(cfg.Frequency)
	to := from
	steps := 0
	if cfg.GlideTo > 0 {
		to = v.carrier.PhaseIncFromHz(cfg.GlideTo)
		steps = int(math.Round(cfg.GlideSeconds * float64(controlRate)))
	}
	v.glide = NewLine(from, to, steps)
	v.lfo.SetFreq(cfg.VibratoHz)
	v.setPitch(from)
	return v
}

// SetModDepth changes the FM depth. Safe to call while the voice plays.
func (v *Voice) SetModDepth(depth float64) {
	v.depth.Store(int32(oscil.Q15n16FromFloat(depth)))
}

// Next returns the next output sample.
func (v *Voice) Next() int8 {
	depth := int32(v.depth.Load())
	m := int32(v.mod.Next())
	return v.carrier.PhMod(oscil.Q15n16(m * depth >> 7))
}

// Control advances the glide and the vibrato by one control step and
// retunes both oscillators.
func (v *Voice) Control() {
	inc := v.glide.Next()
	if v.vibratoDepth != 0 {
		l := float64(v.lfo.Next()) / 128
		inc = oscil.Q16n16(math.Round(float64(inc) * (1 + v.vibratoDepth*l)))
	}
	v.setPitch(inc)
}

func (v *Voice) setPitch(inc oscil.Q16n16) {
	v.carrier.SetPhaseInc(inc)
	v.mod.SetPhaseInc(oscil.Q16n16(math.Round(float64(inc) * v.modRatio)))
}

// Ensemble sums a set of voices into one signal.
type Ensemble struct {
	voices []*Voice
}

// NewEnsemble builds the voices of a patch. Voices naming the same table
// share it.
func NewEnsemble(cfgs []*VoiceConfig) (*Ensemble, error) {
	lfoTable, err := tables.Sine(lfoCells)
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]oscil.Table)
	e := &Ensemble{}
	for i, cfg := range cfgs {
		table, ok := loaded[cfg.Table]
		if !ok {
			table, err = loadTable(cfg.Table)
			if err != nil {
				return nil, fmt.Errorf("voice %d: %w", i, err)
			}
			loaded[cfg.Table] = table
		}
		e.voices = append(e.voices, NewVoice(cfg, table, lfoTable))
		log.Infof("voice %d: %s at %v Hz", i, cfg.Table, cfg.Frequency)
	}
	return e, nil
}

func loadTable(name string) (oscil.Table, error) {
	if tables.Known(name) {
		return tables.ByName(name, audioCells)
	}
	return tables.LoadWAV(name, audioCells)
}

// Next returns the mixed sample in [-1, 1).
func (e *Ensemble) Next() float64 {
	if len(e.voices) == 0 {
		return 0
	}
	var sum int
	for _, v := range e.voices {
		sum += int(v.Next())
	}
	return float64(sum) / float64(128*len(e.voices))
}

// Control runs one control step on every voice.
func (e *Ensemble) Control() {
	for _, v := range e.voices {
		v.Control()
	}
}
