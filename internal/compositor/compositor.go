// Package compositor renders flat 2D device mockups: background art with
// the user image composited through the screen mask.
package compositor

import (
	"image"
	"image/draw"
	"math"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/geometry"
)

// Render draws a flat mockup into dst. The surface is cleared first; nil
// assets leave it blank. The user image, when present, is cover-fitted
// into the mask bounds and drawn through the mask's alpha so only the
// screen region receives it. chromeOffset shifts the image vertically to
// compensate for a mask defined in a coordinate space offset from the
// background art.
func Render(dst *image.NRGBA, a *assets.DeviceAssets, user image.Image, chromeOffset int) {
	clear(dst.Pix)
	if a == nil {
		return
	}

	draw.Draw(dst, a.Background.Bounds(), a.Background, image.Point{}, draw.Src)
	if user == nil {
		return
	}

	ub := user.Bounds()
	fit := geometry.CoverFit(
		float64(ub.Dx()), float64(ub.Dy()),
		float64(a.Bounds.W), float64(a.Bounds.H),
	)

	scaled := ScaleTo(assets.ToNRGBA(user), round(fit.DrawW), round(fit.DrawH))

	x0 := a.Bounds.X + round(fit.OffsetX)
	y0 := a.Bounds.Y + round(fit.OffsetY) + chromeOffset
	r := image.Rect(x0, y0, x0+scaled.Bounds().Dx(), y0+scaled.Bounds().Dy())

	// Alpha-intersect: the mask shares the background's coordinate space,
	// so mask point = destination point.
	draw.DrawMask(dst, r, scaled, image.Point{}, a.Mask, r.Min, draw.Over)
}

func round(v float64) int {
	return int(math.Round(v))
}
