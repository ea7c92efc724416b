package selection

import (
	"math"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

const (
	brightnessBlock = 16
	edgeBlock       = 32
)

func (e *Engine) selectByBrightness(cfg Config) []bitmap.Region {
	limit := cfg.regionCap(defaultBrightnessRegions)
	buf := e.buf
	zone := cfg.Brightness.Zone

	var regions []bitmap.Region
	for y := 0; y < buf.Height; y += brightnessBlock {
		for x := 0; x < buf.Width; x += brightnessBlock {
			if !zone.Contains(blockBrightness(buf, x, y, brightnessBlock)) {
				continue
			}
			regions = append(regions, bitmap.Rect(x, y, brightnessBlock*2, brightnessBlock*2).Clip(buf.Width, buf.Height))
			if len(regions) >= limit {
				return regions
			}
		}
	}
	return regions
}

// blockBrightness returns the mean normalized luminance of the size×size
// block at (x, y), clipped to the buffer.
func blockBrightness(buf *bitmap.Buffer, x, y, size int) float64 {
	total, count := 0.0, 0
	for dy := 0; dy < size && y+dy < buf.Height; dy++ {
		for dx := 0; dx < size && x+dx < buf.Width; dx++ {
			i := buf.Offset(x+dx, y+dy)
			total += bitmap.Brightness(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func (e *Engine) selectByEdges(cfg Config) []bitmap.Region {
	limit := cfg.regionCap(defaultEdgeRegions)
	buf := e.buf
	edges := SobelEdges(buf, cfg.Edges.Threshold)

	var regions []bitmap.Region
	for y := 0; y < buf.Height; y += edgeBlock {
		for x := 0; x < buf.Width; x += edgeBlock {
			count := 0
			for dy := 0; dy < edgeBlock && y+dy < buf.Height; dy++ {
				row := (y + dy) * buf.Width
				for dx := 0; dx < edgeBlock && x+dx < buf.Width; dx++ {
					if edges[row+x+dx] {
						count++
					}
				}
			}
			if count <= cfg.Edges.MinRegionSize {
				continue
			}
			regions = append(regions, bitmap.Rect(x, y, edgeBlock, edgeBlock).Clip(buf.Width, buf.Height))
			if len(regions) >= limit {
				return regions
			}
		}
	}
	return regions
}

// SobelEdges computes the Sobel gradient magnitude of the luminance channel
// for every interior pixel and reports which exceed threshold. Border pixels
// are never edges.
func SobelEdges(buf *bitmap.Buffer, threshold float64) []bool {
	w, h := buf.Width, buf.Height
	lum := make([]float64, w*h)
	for i := range lum {
		p := i * bitmap.BytesPerPixel
		lum[i] = bitmap.Luminance(buf.Pix[p], buf.Pix[p+1], buf.Pix[p+2])
	}

	edges := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl, tm, tr := lum[(y-1)*w+x-1], lum[(y-1)*w+x], lum[(y-1)*w+x+1]
			ml, mr := lum[y*w+x-1], lum[y*w+x+1]
			bl, bm, br := lum[(y+1)*w+x-1], lum[(y+1)*w+x], lum[(y+1)*w+x+1]

			gx := -tl - 2*ml - bl + tr + 2*mr + br
			gy := -tl - 2*tm - tr + bl + 2*bm + br
			edges[y*w+x] = math.Sqrt(gx*gx+gy*gy) > threshold
		}
	}
	return edges
}
