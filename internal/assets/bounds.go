package assets

import "image"

// Bounds is the tight bounding box of non-transparent mask pixels, in
// mask pixel space.
type Bounds struct {
	X int
	Y int
	W int
	H int
}

// ExtractBounds scans the mask's alpha channel and returns the inclusive
// bounding rectangle of pixels with alpha > 0, relative to the mask's
// bounds origin. A fully transparent mask
// degenerates to the full mask extent so downstream fitting never sees a
// zero-area target.
func ExtractBounds(mask *image.NRGBA) Bounds {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1

	pix := mask.Pix
	for y := 0; y < h; y++ {
		off := mask.PixOffset(b.Min.X, b.Min.Y+y)
		row := pix[off : off+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return Bounds{X: 0, Y: 0, W: w, H: h}
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
}
