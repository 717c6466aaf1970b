package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/go-audio/wav"
)

type countingSource struct {
	next, control atomic.Int64
}

func (s *countingSource) Next() float64 {
	s.next.Add(1)
	return 0.25
}

func (s *countingSource) Control() {
	s.control.Add(1)
}

func testOutput(path string) OutputConfig {
	return OutputConfig{
		Backend:  BackendWAV,
		Path:     path,
		BitDepth: 16,
		Seconds:  1,
		Gain:     0.5,
	}
}

func TestRenderSchedulesControl(t *testing.T) {
	var src countingSource
	out := testOutput(filepath.Join(t.TempDir(), "out.wav"))
	out.Seconds = 1.01
	if err := RenderFile(context.Background(), &src, out); err != nil {
		t.Fatal(err)
	}
	total := int64(1.01 * float64(sampleRate))
	assert(t, src.next.Load(), total)
	assert(t, src.control.Load(), (total+int64(samplesPerControl())-1)/int64(samplesPerControl()))
}

func TestRenderSine(t *testing.T) {
	e, err := NewEnsemble([]*VoiceConfig{{Table: "sine", Frequency: 256, ModRatio: 1}})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sine.wav")
	if err := RenderFile(context.Background(), e, testOutput(path)); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("rendered file is not a valid WAV")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	assert(t, d.SampleRate, uint32(sampleRate))
	assert(t, int(d.BitDepth), 16)
	assert(t, int(d.NumChans), 1)
	assert(t, len(buf.Data), sampleRate)

	// 256 Hz is exactly 64 samples per cycle
	rising, peak := 0, 0
	for i := 1; i < len(buf.Data); i++ {
		if buf.Data[i-1] < 0 && buf.Data[i] >= 0 {
			rising++
		}
		peak = max(peak, buf.Data[i])
	}
	assert(t, rising, 256)
	if peak < 8000 {
		t.Fatalf("peak %d too quiet", peak)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var src countingSource
	err := RenderFile(ctx, &src, testOutput(filepath.Join(t.TempDir(), "out.wav")))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	assert(t, src.next.Load(), 0)
}

func TestRenderFileBadPath(t *testing.T) {
	var src countingSource
	out := testOutput(filepath.Join(t.TempDir(), "missing", "out.wav"))
	if err := RenderFile(context.Background(), &src, out); err == nil {
		t.Fatal("expected error")
	}
}
