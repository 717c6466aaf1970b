package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
	log "github.com/golang/glog"
)

// Source is what the renderers and players pull from: Next once per sample
// at the audio rate and Control once per control step.
type Source interface {
	Next() float64
	Control()
}

// samplesPerControl is the number of audio samples between control steps.
func samplesPerControl() int {
	return sampleRate / controlRate
}

// RenderFile renders the patch into a WAV file at out.Path.
func RenderFile(ctx context.Context, src Source, out OutputConfig) error {
	f, err := os.Create(out.Path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", out.Path, err)
	}
	if err := Render(ctx, src, f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes out.Seconds of src to w as mono PCM WAV. Control steps are
// interleaved with the samples at the control rate, so the result does not
// depend on wall clock timing.
func Render(ctx context.Context, src Source, w io.WriteSeeker, out OutputConfig) error {
	total := int(out.Seconds * float64(sampleRate))
	block := samplesPerControl()

	enc := wav.NewEncoder(w, sampleRate, out.BitDepth, 1, 1)
	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]float64, block),
	}
	meter := NewRingBuffer[int8](block)

	for done := 0; done < total; {
		if err := ctx.Err(); err != nil {
			return err
		}
		src.Control()

		n := min(block, total-done)
		buf.Data = buf.Data[:n]
		for i := range buf.Data {
			s := src.Next()
			meter.Insert(int8(s * 128))
			buf.Data[i] = s
		}
		if err := transforms.Gain(buf, out.Gain); err != nil {
			return fmt.Errorf("failed to apply gain: %w", err)
		}
		if err := transforms.PCMScale(buf, out.BitDepth); err != nil {
			return fmt.Errorf("failed to scale to %d bit: %w", out.BitDepth, err)
		}
		ib := buf.AsIntBuffer()
		ib.SourceBitDepth = out.BitDepth
		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}

		done += n
		if log.V(2) {
			dc, _ := meter.Average()
			log.Infof("rendered %d/%d samples, peak %d dc %.2f", done, total, meter.Peak(), dc)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish WAV: %w", err)
	}
	log.Infof("rendered %d samples at %d Hz", total, sampleRate)
	return nil
}
