package engine_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/engine"
)

func ExampleScheduler_Render() {
	cfg, err := engine.DefaultConfig().WithPreset("film-burn")
	if err != nil {
		panic(err)
	}
	s := engine.New(cfg, log.New(io.Discard))
	if err := s.LoadImage(bitmap.Filled(64, 64, 200, 80, 40, 255)); err != nil {
		panic(err)
	}

	sink := &engine.MemorySink{}
	if err := s.Render(context.Background(), 30, sink); err != nil {
		panic(err)
	}
	fmt.Println(len(sink.Frames), sink.Last().Width, sink.Last().Height)
	// Output: 30 64 64
}

func ExamplePresets() {
	for _, p := range engine.Presets() {
		fmt.Println(p.Name)
	}
	// Output:
	// vintage-tv
	// digital-chaos
	// rainbow-sort
	// cyberpunk
	// film-burn
}
