package atlas

import (
	"image"
	"math"

	"device-mockup-renderer/internal/geometry"
)

// drawAffine draws src into dst under the transform m by inverse mapping:
// each destination pixel center is pulled back into source space and
// bilinearly sampled. Pixels mapping outside the source are left alone.
func drawAffine(dst, src *image.NRGBA, m geometry.Affine) {
	sw := src.Rect.Dx()
	sh := src.Rect.Dy()
	if sw == 0 || sh == 0 {
		return
	}

	// Bound the work to the transformed source rectangle.
	minX, minY, maxX, maxY := transformedBounds(m, float64(sw), float64(sh))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > dst.Rect.Dx() {
		maxX = dst.Rect.Dx()
	}
	if maxY > dst.Rect.Dy() {
		maxY = dst.Rect.Dy()
	}

	inv := m.Invert()
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			// Pixel centers on both sides.
			sx, sy := inv.Apply(float64(x)+0.5, float64(y)+0.5)
			sx -= 0.5
			sy -= 0.5
			if sx < 0 || sy < 0 || sx > float64(sw-1) || sy > float64(sh-1) {
				continue
			}
			r, g, b, a := sampleBilinear(src, sx, sy)
			i := dst.PixOffset(x, y)
			dst.Pix[i] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = b
			dst.Pix[i+3] = a
		}
	}
}

// transformedBounds returns the integer bounding box of the unit rect
// (0,0)-(w,h) under m.
func transformedBounds(m geometry.Affine, w, h float64) (minX, minY, maxX, maxY int) {
	fminX, fminY := math.Inf(1), math.Inf(1)
	fmaxX, fmaxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := m.Apply(p[0], p[1])
		fminX = math.Min(fminX, x)
		fminY = math.Min(fminY, y)
		fmaxX = math.Max(fmaxX, x)
		fmaxY = math.Max(fmaxY, y)
	}
	return int(math.Floor(fminX)), int(math.Floor(fminY)),
		int(math.Ceil(fmaxX)), int(math.Ceil(fmaxY))
}

// sampleBilinear filters four neighboring texels, clamped at the edges.
// Accesses Pix directly for performance.
func sampleBilinear(src *image.NRGBA, fx, fy float64) (r, g, b, a uint8) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	x0 := int(fx)
	y0 := int(fy)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := src.Stride
	pix := src.Pix
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
