package selection

import (
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// cacheKey identifies a deterministic selection result.
type cacheKey struct {
	method Method
	config Config
}

// Engine generates candidate regions from a buffer. It is not safe for
// concurrent use.
type Engine struct {
	buf    *bitmap.Buffer
	rng    *rand.Rand
	logger *log.Logger

	cache  map[cacheKey][]bitmap.Region
	shapes []Shape
}

// NewEngine creates an engine. A nil rng falls back to a generator seeded
// with 42; a nil logger uses log.Default().
func NewEngine(rng *rand.Rand, logger *log.Logger) *Engine {
	if rng == nil {
		rng = randutil.New(42)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		rng:    rng,
		logger: logger,
		cache:  make(map[cacheKey][]bitmap.Region),
	}
}

// SetBuffer points the engine at a new buffer and drops every cached result.
func (e *Engine) SetBuffer(buf *bitmap.Buffer) {
	e.buf = buf
	e.Invalidate()
}

// Buffer returns the buffer the engine currently samples.
func (e *Engine) Buffer() *bitmap.Buffer {
	return e.buf
}

// Invalidate drops every cached result. Call it whenever the buffer's pixels
// change in a way selections should observe.
func (e *Engine) Invalidate() {
	clear(e.cache)
}

// CacheLen reports the number of cached results.
func (e *Engine) CacheLen() int {
	return len(e.cache)
}

// Shapes returns the outlines produced by the last organic-shape run.
func (e *Engine) Shapes() []Shape {
	return e.shapes
}

// Generate returns the regions for method under cfg. Every returned region
// lies inside the buffer. Without a buffer it returns nil.
//
// The returned slice is owned by the caller.
func (e *Engine) Generate(method Method, cfg Config) []bitmap.Region {
	if e.buf.Empty() {
		e.logger.Debug("selection skipped: no image loaded", "method", method)
		return nil
	}

	key := cacheKey{method: method, config: cfg}
	if method.Cacheable() {
		if cached, ok := e.cache[key]; ok {
			e.logger.Debug("selection cache hit", "method", method, "regions", len(cached))
			return slices.Clone(cached)
		}
	}

	var regions []bitmap.Region
	switch method {
	case MethodRandom:
		regions = e.selectRandom(cfg)
	case MethodColorRange:
		regions = e.selectByColorRange(cfg)
	case MethodBrightness:
		regions = e.selectByBrightness(cfg)
	case MethodEdgeDetection:
		regions = e.selectByEdges(cfg)
	case MethodOrganicShapes:
		regions = e.selectOrganicShapes(cfg)
	case MethodContentAware:
		regions = e.selectContentAware(cfg)
	case MethodCombined:
		regions = e.selectCombined(cfg)
	default:
		e.logger.Warn("unknown selection method, using one random region", "method", uint8(method))
		return []bitmap.Region{e.RandomRegion(cfg.Intensity)}
	}

	regions = bitmap.ClipAll(regions, e.buf.Width, e.buf.Height)
	if method.Cacheable() {
		e.cache[key] = slices.Clone(regions)
	}
	e.logger.Debug("selection generated", "method", method, "regions", len(regions))
	return regions
}

// RandomRegion picks one random rectangle whose sides are between 10 pixels
// and the intensity's fraction of the buffer. It is the fallback used when a
// method yields nothing.
func (e *Engine) RandomRegion(intensity Intensity) bitmap.Region {
	if e.buf.Empty() {
		return bitmap.Region{}
	}
	return randomRegion(e.rng, intensity, e.buf.Width, e.buf.Height)
}

func randomRegion(rng *rand.Rand, intensity Intensity, width, height int) bitmap.Region {
	div := intensity.randomDivisor()
	maxW := max(1, width/div)
	maxH := max(1, height/div)
	w := randutil.Int(rng, min(10, maxW), maxW)
	h := randutil.Int(rng, min(10, maxH), maxH)
	x := randutil.Int(rng, 0, max(0, width-w))
	y := randutil.Int(rng, 0, max(0, height-h))
	return bitmap.Rect(x, y, w, h).Clip(width, height)
}

func (e *Engine) selectRandom(cfg Config) []bitmap.Region {
	n := cfg.regionCap(defaultRandomRegions)
	regions := make([]bitmap.Region, 0, n)
	for i := 0; i < n; i++ {
		regions = append(regions, e.RandomRegion(cfg.Intensity))
	}
	return regions
}

func (e *Engine) selectContentAware(cfg Config) []bitmap.Region {
	regions := e.selectByEdges(cfg.withMax(3))
	regions = append(regions, e.selectByColorRange(cfg.withMax(2))...)
	return truncate(bitmap.MergeOverlapping(regions), cfg.regionCap(len(regions)))
}

func (e *Engine) selectCombined(cfg Config) []bitmap.Region {
	limit := cfg.regionCap(defaultColorRegions)
	perMethod := (limit + 2) / 3

	var regions []bitmap.Region
	if cfg.Combined.UseColor {
		regions = append(regions, e.selectByColorRange(cfg.withMax(perMethod))...)
	}
	if cfg.Combined.UseBrightness {
		regions = append(regions, e.selectByBrightness(cfg.withMax(perMethod))...)
	}
	if cfg.Combined.UseEdges {
		regions = append(regions, e.selectByEdges(cfg.withMax(perMethod))...)
	}
	return truncate(bitmap.MergeOverlapping(regions), limit)
}

func truncate(regions []bitmap.Region, n int) []bitmap.Region {
	if n >= 0 && len(regions) > n {
		return regions[:n]
	}
	return regions
}
