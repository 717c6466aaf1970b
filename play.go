package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	log "github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"
)

// Play sends src to the sound card through the configured backend. The
// backend's audio callback is the producer; a separate goroutine runs the
// control steps on a ticker. Playback ends after out.Seconds or when ctx is
// cancelled.
func Play(ctx context.Context, src Source, out OutputConfig) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(out.Seconds*float64(time.Second)))
	defer cancel()

	p := &producer{src: src, gain: out.Gain}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runControl(ctx, src)
	})
	g.Go(func() error {
		switch out.Backend {
		case BackendPortAudio:
			return playPortAudio(ctx, p)
		case BackendOto:
			return playOto(ctx, p)
		default:
			return fmt.Errorf("backend %q cannot play live", out.Backend)
		}
	})

	err := g.Wait()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Infof("playback finished: %v", err)
		return nil
	}
	return err
}

// runControl calls src.Control at the control rate until ctx is done.
func runControl(ctx context.Context, src Source) error {
	t := time.NewTicker(time.Second / time.Duration(controlRate))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			src.Control()
		}
	}
}

// producer adapts a Source to the backends. Each backend calls it from a
// single audio thread.
type producer struct {
	src  Source
	gain float64
}

func (p *producer) fill(out []float32) {
	for i := range out {
		out[i] = float32(p.src.Next() * p.gain)
	}
}

// Read implements io.Reader with signed 16 bit little endian samples.
func (p *producer) Read(b []byte) (int, error) {
	n := len(b) / 2
	for i := 0; i < n; i++ {
		v := int16(math.Round(p.src.Next() * p.gain * math.MaxInt16))
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return 2 * n, nil
}

func playPortAudio(ctx context.Context, p *producer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 0, p.fill)
	if err != nil {
		return fmt.Errorf("failed to open portaudio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}
	log.Infof("playing through portaudio at %d Hz", sampleRate)
	<-ctx.Done()
	if err := stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop portaudio stream: %w", err)
	}
	return ctx.Err()
}

func playOto(ctx context.Context, p *producer) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(p)
	defer player.Close()
	player.Play()
	log.Infof("playing through oto at %d Hz", sampleRate)
	<-ctx.Done()
	return ctx.Err()
}
