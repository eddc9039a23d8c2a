package geometry

// Fit describes how a source image is scaled and positioned to cover a
// target rectangle. Offsets are ≤ 0: the scaled image is centered and
// overflows the target symmetrically.
type Fit struct {
	DrawW   float64
	DrawH   float64
	OffsetX float64
	OffsetY float64
}

// CoverFit computes cover-style scaling of a srcW×srcH image into a
// dstW×dstH rectangle: the image is scaled by the larger of the two axis
// ratios so it fully covers the target, preserving aspect ratio, with the
// overflow cropped on both sides equally.
func CoverFit(srcW, srcH, dstW, dstH float64) Fit {
	scale := dstW / srcW
	if s := dstH / srcH; s > scale {
		scale = s
	}
	drawW := srcW * scale
	drawH := srcH * scale
	return Fit{
		DrawW:   drawW,
		DrawH:   drawH,
		OffsetX: (dstW - drawW) / 2,
		OffsetY: (dstH - drawH) / 2,
	}
}
