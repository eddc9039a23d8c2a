// Package atlas paints a flat image into the UV rectangle of a device's
// screen-texture atlas, honoring the device's rotation, scale, and offset
// calibration.
package atlas

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/compositor"
	"device-mockup-renderer/internal/geometry"
	"device-mockup-renderer/internal/logging"
)

// ErrNoScreenDimensions is returned when neither mask bounds nor a
// declared nominal screen size is available for a device.
var ErrNoScreenDimensions = errors.New("atlas: no screen dimensions for device")

// Paint renders the user image into a square texture atlas for the
// device's screen material. The screen pixel size comes from the 2D mask
// bounds when present, else from the device's declared screen size. The
// result is ready to upload as a texture.
func Paint(user image.Image, dev *catalog.Device, a *assets.DeviceAssets) (*image.NRGBA, error) {
	screenW, screenH := screenSize(dev, a)
	if screenW <= 0 || screenH <= 0 {
		return nil, ErrNoScreenDimensions
	}

	screen := renderScreen(user, screenW, screenH, dev.ScreenTextureOffset)

	side := dev.AtlasSize
	if side <= 0 {
		side = screenW
	}

	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	fillOpaqueBlack(out)

	// UV rect → atlas pixel space. UV origin is bottom-left, raster
	// origin top-left, so V flips. An unconfigured rect means the
	// screen spans the whole atlas.
	uv := dev.UV
	if uv.IsZero() {
		uv = catalog.UVRect{UMax: 1, VMax: 1}
	}
	rectLeft := uv.UMin * float64(side)
	rectRight := uv.UMax * float64(side)
	rectTop := (1 - uv.VMax) * float64(side)
	rectBottom := (1 - uv.VMin) * float64(side)
	rectW := rectRight - rectLeft
	rectH := rectBottom - rectTop
	cx := (rectLeft + rectRight) / 2
	cy := (rectTop + rectBottom) / 2

	tx := dev.TranslateX + rectW*dev.TranslateXPct
	ty := dev.TranslateY + rectH*dev.TranslateYPct

	// An odd quarter-turn swaps which screen dimension spans the rect
	// width before the base scale is computed.
	effW, effH := float64(screenW), float64(screenH)
	if oddQuarterTurn(dev.Rotation) {
		effW, effH = effH, effW
	}
	devSX, devSY := dev.EffectiveScale()
	sx := rectW / effW * devSX
	sy := rectH / effH * devSY

	// Translate to the shifted rect center, rotate, scale, then draw the
	// screen raster centered at the new origin.
	m := geometry.Translate(cx+tx, cy+ty).
		Mul(geometry.Rotate(dev.Rotation)).
		Mul(geometry.Scale(sx, sy)).
		Mul(geometry.Translate(-float64(screenW)/2, -float64(screenH)/2))

	drawAffine(out, screen, m)

	logging.Logger().Debug("atlas painted",
		"device", dev.ID, "side", side,
		"rect_w", rectW, "rect_h", rectH,
		"scale_x", sx, "scale_y", sy)
	return out, nil
}

// screenSize picks the screen pixel dimensions: mask bounds when 2D
// assets exist, else the declared nominal size.
func screenSize(dev *catalog.Device, a *assets.DeviceAssets) (int, int) {
	if a != nil {
		return a.Bounds.W, a.Bounds.H
	}
	return dev.ScreenW, dev.ScreenH
}

// renderScreen cover-fits the user image into an opaque black screen
// raster, shifted vertically by the device's texture offset.
func renderScreen(user image.Image, w, h, yOffset int) *image.NRGBA {
	screen := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillOpaqueBlack(screen)
	if user == nil {
		return screen
	}

	ub := user.Bounds()
	fit := geometry.CoverFit(float64(ub.Dx()), float64(ub.Dy()), float64(w), float64(h))
	scaled := compositor.ScaleTo(assets.ToNRGBA(user),
		int(math.Round(fit.DrawW)), int(math.Round(fit.DrawH)))

	x0 := int(math.Round(fit.OffsetX))
	y0 := int(math.Round(fit.OffsetY)) + yOffset
	r := image.Rect(x0, y0, x0+scaled.Bounds().Dx(), y0+scaled.Bounds().Dy())
	draw.Draw(screen, r, scaled, image.Point{}, draw.Over)
	return screen
}

func fillOpaqueBlack(img *image.NRGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0
		pix[i+1] = 0
		pix[i+2] = 0
		pix[i+3] = 255
	}
}

// oddQuarterTurn reports whether rot is an odd multiple of 90°.
func oddQuarterTurn(rot float64) bool {
	q := rot / (math.Pi / 2)
	r := math.Round(q)
	if math.Abs(q-r) > 1e-6 {
		return false
	}
	return int(math.Abs(r))%2 == 1
}
