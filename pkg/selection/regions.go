package selection

import "github.com/matzehuels/glitcher/pkg/bitmap"

// MaskToRegions splits the selection mask into 4-connected components and
// returns the bounding box of each component with more than MinMaskRegion
// pixels. Returns nil without an image.
func (m *Manager) MaskToRegions() []bitmap.Region {
	if m.mask == nil {
		return nil
	}
	return maskRegions(m.mask)
}

func maskRegions(mask *bitmap.Mask) []bitmap.Region {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	selected := func(i int) bool { return mask.Bits[i] == bitmap.Selected }

	var regions []bitmap.Region
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if visited[i] || !selected(i) {
				continue
			}
			fill := floodFill(w, h, x, y, visited, selected, nil)
			if fill.pixels > MinMaskRegion {
				regions = append(regions, fill.bounds())
			}
		}
	}
	return regions
}
