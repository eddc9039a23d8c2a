package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverFit(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH float64
		drawW, drawH           float64
		offX, offY             float64
	}{
		{"exact", 100, 200, 100, 200, 100, 200, 0, 0},
		{"scale up 2x", 50, 100, 100, 200, 100, 200, 0, 0},
		{"wide source into tall target", 200, 100, 100, 200, 400, 200, -150, 0},
		{"tall source into wide target", 100, 200, 200, 100, 200, 400, 0, -150},
		{"scale down", 1000, 1000, 100, 50, 100, 100, 0, -25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CoverFit(tt.srcW, tt.srcH, tt.dstW, tt.dstH)
			assert.InDelta(t, tt.drawW, f.DrawW, 1e-9)
			assert.InDelta(t, tt.drawH, f.DrawH, 1e-9)
			assert.InDelta(t, tt.offX, f.OffsetX, 1e-9)
			assert.InDelta(t, tt.offY, f.OffsetY, 1e-9)
		})
	}
}

func TestCoverFitProperties(t *testing.T) {
	sizes := []float64{1, 7, 50, 123, 1920}
	for _, sw := range sizes {
		for _, sh := range sizes {
			for _, dw := range sizes {
				for _, dh := range sizes {
					f := CoverFit(sw, sh, dw, dh)
					// Full coverage in both axes.
					assert.GreaterOrEqual(t, f.DrawW, dw-1e-9)
					assert.GreaterOrEqual(t, f.DrawH, dh-1e-9)
					// Aspect ratio preserved.
					assert.InDelta(t, sw/sh, f.DrawW/f.DrawH, 1e-9)
					// Centered, never positive offsets.
					assert.LessOrEqual(t, f.OffsetX, 1e-9)
					assert.LessOrEqual(t, f.OffsetY, 1e-9)
				}
			}
		}
	}
}

func TestAffineCompose(t *testing.T) {
	// Translate then rotate then scale, applied about a center point.
	m := Translate(10, 20).Mul(Rotate(math.Pi / 2)).Mul(Scale(2, 3))
	x, y := m.Apply(1, 0)
	// Scale: (2,0); rotate 90°: (0,2); translate: (10,22).
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 22, y, 1e-9)
}

func TestAffineInvertRoundTrip(t *testing.T) {
	m := Translate(5, -7).Mul(Rotate(0.3)).Mul(Scale(1.5, 0.75))
	inv := m.Invert()
	x, y := m.Apply(3, 4)
	bx, by := inv.Apply(x, y)
	assert.InDelta(t, 3, bx, 1e-9)
	assert.InDelta(t, 4, by, 1e-9)
}

func TestAffineAxisAligned(t *testing.T) {
	assert.True(t, Identity().IsAxisAligned())
	assert.True(t, Translate(1, 2).Mul(Scale(3, 4)).IsAxisAligned())
	assert.False(t, Rotate(0.1).IsAxisAligned())
	// Rotation by π keeps axes aligned only up to sign and floating error;
	// the check is exact, so sin(π) ≠ 0 makes it non-aligned.
	assert.False(t, Rotate(math.Pi).IsAxisAligned())
}
