// Package pkg provides the core libraries for Glitcher glitch animation.
//
// # Overview
//
// Glitcher turns a still image into a glitch animation. Every frame it picks
// regions of the image (clumps), drags, twists and tears them for a few
// frames, optionally runs color and pixel-sort passes over the result, and
// finally layers a non-destructive filter on top for display. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic: [bitmap], [selection], [transform], [filter], [engine]
//  2. Orchestration: [pipeline] (load → animate → encode)
//  3. Hosts: [server] and [session] (HTTP), [display] (overlay, window)
//  4. Infrastructure: [cache], [config], [io], [errors], [observability]
//
// # Architecture
//
// The typical data flow through a render:
//
//	Image file (PNG, JPEG, GIF, BMP, TIFF, WebP)
//	         ↓
//	    [io] package (decode, orient, resize to working dimensions)
//	         ↓
//	    [engine] package (scheduler: select → transform → filter, per frame)
//	         ↓
//	    [engine.Sink] (memory, window, HTTP frame endpoint)
//	         ↓
//	    GIF / PNG / frame sequence
//
// # Quick Start
//
// Render a short animation with a preset:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/glitcher/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source: "photo.jpg",
//	    Preset: "vintage-tv",
//	    Frames: 90,
//	    Format: pipeline.FormatGIF,
//	})
//	os.WriteFile("photo.gif", res.Artifact, 0644)
//
// Drive the scheduler directly:
//
//	buf, _ := io.Load("photo.jpg")
//	s := engine.New(engine.DefaultConfig(), logger)
//	s.LoadImage(buf)
//	for i := 0; i < 30; i++ {
//	    f, _ := s.Step(ctx)
//	    show(f.Image)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [bitmap] - RGBA pixel buffers, regions and selection masks shared by every
// stage. Color helpers convert through HSL.
//
// [selection] - Region pickers (random, color range, brightness, edge
// density, organic blobs and their combinations) and the manual tools
// (rectangle, brush, magic wand, lasso) that build a mask. The manager turns masks or picks into clumps with lifetimes.
//
// [transform] - Destructive per-clump effects: directional shifts, spirals,
// slices, pixel sorting and color channel effects.
//
// [filter] - Non-destructive display filters, from scanlines and motion blur
// to styled looks (pop art, vintage, cyberpunk, artistic, atmospheric,
// experimental).
//
// [engine] - The animation scheduler: frame loop, clump lifecycle, presets,
// tool events and debug snapshots.
//
// ## Orchestration and Hosts
//
// [pipeline] - Batch renders used by the CLI and the HTTP API, with a
// two-level cache (normalized image, encoded artifact).
//
// [server] - HTTP API over chi: interactive sessions and batch renders.
//
// [session] - Sessions that each own a scheduler, with TTL expiry.
//
// [display] - Selection and clump overlay drawn with gg. The window
// subpackage shows a live scheduler with ebiten.
//
// ## Infrastructure
//
// [cache] - Artifact caches: null, memory, file (CLI) and Redis (shared).
//
// [config] - TOML config files layered over defaults and presets.
//
// [io] - Image decoding, dimension normalization, PNG/GIF encoding.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook interfaces for frame, pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/engine/...             # Specific package
//	go test -run Example                 # Examples only
//
// [bitmap]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/bitmap
// [selection]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/selection
// [transform]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/transform
// [filter]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/filter
// [engine]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/engine
// [engine.Sink]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/engine#Sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/server
// [session]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/session
// [display]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/display
// [cache]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/glitcher/pkg/observability
package pkg
