package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	log "github.com/golang/glog"
)

var (
	configFile = flag.String("config", "patch.toml", "TOML patch to play, or - to read it from stdin")
	backend    = flag.String("backend", "", "override the patch's output backend: wav, portaudio or oto")
	outFile    = flag.String("out", "", "override the patch's WAV output path")
)

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input, name := io.Reader(os.Stdin), "stdin"
	if *configFile != "-" {
		f, err := os.Open(*configFile)
		if err != nil {
			log.Exitf("failed to open patch: %v", err)
		}
		defer f.Close()
		input, name = f, *configFile
	}

	log.Infof("starting up and reading patch from %s", name)
	if err := doMain(ctx, input, name); err != nil {
		log.Exitf("failed to run: %v", err)
	}
}

func doMain(ctx context.Context, input io.Reader, name string) error {
	cfg, err := Parse(input, name)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Output.Backend = *backend
	}
	if *outFile != "" {
		cfg.Output.Path = *outFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ens, err := NewEnsemble(cfg.Voices)
	if err != nil {
		return err
	}

	if cfg.Output.Backend == BackendWAV {
		return RenderFile(ctx, ens, cfg.Output)
	}
	return Play(ctx, ens, cfg.Output)
}
