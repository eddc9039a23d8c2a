package batch

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/compositor"
	"device-mockup-renderer/internal/logging"
)

// RenderSheet composites the flat mockups of every 2D device onto one
// preview canvas, scaled and placed per the device's sheet fields.
// Devices without 2D assets are skipped.
func RenderSheet(cfg Config, devices []*catalog.Device, w, h int) (*image.NRGBA, error) {
	canvas := imaging.New(w, h, color.White)

	for _, dev := range devices {
		user, err := cfg.Source(dev)
		if err != nil {
			return nil, err
		}
		a, err := cfg.Assets.Load(dev)
		if err != nil {
			return nil, err
		}
		if a == nil {
			logging.Logger().Debug("sheet: skipping device without 2D assets", "device", dev.ID)
			continue
		}

		b := a.Background.Bounds()
		flat := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		compositor.Render(flat, a, user, dev.ChromeOffset)

		scale := dev.SheetScale
		if scale <= 0 {
			scale = 1
		}
		placed := flat
		if scale != 1 {
			sw := int(math.Round(float64(b.Dx()) * scale))
			sh := int(math.Round(float64(b.Dy()) * scale))
			placed = imaging.Resize(flat, sw, sh, imaging.Lanczos)
		}

		r := placed.Bounds().Add(image.Pt(dev.SheetX, dev.SheetY))
		draw.Draw(canvas, r, placed, image.Point{}, draw.Over)
	}

	return canvas, nil
}
