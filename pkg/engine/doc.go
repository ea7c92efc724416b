// Package engine runs the glitch animation.
//
// A [Scheduler] owns one [State]: the pristine source image, the working
// buffer that destructive transforms corrupt in place, the live clumps and
// the frame counter. Every frame it
//
//  1. spawns clumps when none are alive, from the selection mask in manual
//     mode or from the selection engine otherwise, falling back to a single
//     random clump when automatic selection finds nothing
//  2. shifts and swirls each clump's rectangle and counts its lifetime down
//  3. drops expired clumps
//  4. runs the whole-buffer slice, pixel sort and color passes
//  5. composites the configured filter into a new buffer
//  6. hands the result to a [Sink]
//
// [Scheduler.Tick] drives frames from a wall clock and drops ticks that
// arrive faster than Config.TargetFPS. [Scheduler.Render] runs the same
// algorithm back to back for exports.
//
// # Configuration
//
// [Config] is TOML-decodable and starts from [DefaultConfig]. Built-in
// presets ([Presets]) overwrite the effect selection of a config:
//
//	cfg, err := engine.DefaultConfig().WithPreset("vintage-tv")
//	if err != nil {
//	    return err
//	}
//	s := engine.New(cfg, logger)
//	if err := s.LoadImage(buf); err != nil {
//	    return err
//	}
//	sink := &engine.MemorySink{}
//	err = s.Render(ctx, 120, sink)
//
// A Scheduler is not safe for concurrent use. Hosts that share one across
// goroutines, like the HTTP server, serialize access with their own lock.
package engine
