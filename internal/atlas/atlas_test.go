package atlas

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/catalog"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestPaintNoScreenDimensions(t *testing.T) {
	dev := &catalog.Device{ID: "x"}
	_, err := Paint(solid(10, 10, red), dev, nil)
	assert.ErrorIs(t, err, ErrNoScreenDimensions)
}

func TestPaintIdentityRoundTrip(t *testing.T) {
	// rect = 25..75 in a 100px atlas; screen 50×50 → base scale 1.
	dev := &catalog.Device{
		ID:        "flat",
		ScreenW:   50,
		ScreenH:   50,
		AtlasSize: 100,
		UV:        catalog.UVRect{UMin: 0.25, VMin: 0.25, UMax: 0.75, VMax: 0.75},
	}
	out, err := Paint(solid(50, 50, red), dev, nil)
	require.NoError(t, err)
	require.Equal(t, 100, out.Bounds().Dx())

	// Inside the rect: exactly the screen raster.
	for _, p := range [][2]int{{25, 25}, {74, 74}, {50, 50}, {25, 74}} {
		assert.Equal(t, red, out.NRGBAAt(p[0], p[1]), "at %v", p)
	}
	// Outside: opaque black fill.
	for _, p := range [][2]int{{0, 0}, {24, 50}, {75, 50}, {50, 24}, {50, 75}, {99, 99}} {
		assert.Equal(t, black, out.NRGBAAt(p[0], p[1]), "at %v", p)
	}
}

func TestPaintZeroUVRectSpansFullAtlas(t *testing.T) {
	// A device with no configured UV rect paints the screen across the
	// whole atlas instead of collapsing to a zero-area target.
	dev := &catalog.Device{
		ID:        "nouv",
		ScreenW:   50,
		ScreenH:   50,
		AtlasSize: 100,
	}
	out, err := Paint(solid(50, 50, red), dev, nil)
	require.NoError(t, err)
	for _, p := range [][2]int{{1, 1}, {50, 50}, {98, 98}} {
		assert.Equal(t, red, out.NRGBAAt(p[0], p[1]), "at %v", p)
	}
}

func TestPaintUsesMaskBoundsOverNominalSize(t *testing.T) {
	dev := &catalog.Device{
		ID:        "masked",
		ScreenW:   999, // must be ignored
		ScreenH:   999,
		AtlasSize: 100,
		UV:        catalog.UVRect{UMin: 0, VMin: 0, UMax: 1, VMax: 1},
	}
	a := &assets.DeviceAssets{Bounds: assets.Bounds{X: 5, Y: 5, W: 100, H: 100}}
	out, err := Paint(solid(10, 10, blue), dev, a)
	require.NoError(t, err)
	assert.Equal(t, blue, out.NRGBAAt(50, 50))
	assert.Equal(t, blue, out.NRGBAAt(2, 2))
}

func TestPaintOddQuarterTurnSwapsAxes(t *testing.T) {
	// Screen 40×20, left half red, right half blue. Rect 20×40 at the
	// center of a 100px atlas; a 90° turn makes the dimensions agree with
	// base scale 1 on both axes.
	user := solid(40, 20, red)
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			user.SetNRGBA(x, y, blue)
		}
	}
	dev := &catalog.Device{
		ID:        "rotated",
		ScreenW:   40,
		ScreenH:   20,
		AtlasSize: 100,
		Rotation:  math.Pi / 2,
		UV:        catalog.UVRect{UMin: 0.4, VMin: 0.3, UMax: 0.6, VMax: 0.7},
	}
	out, err := Paint(user, dev, nil)
	require.NoError(t, err)

	// The rotated raster occupies x 40..60, y 30..70. Screen (5,10)
	// lands at (50,35); screen (35,10) lands at (50,65).
	assert.Equal(t, red, out.NRGBAAt(50, 35))
	assert.Equal(t, blue, out.NRGBAAt(50, 65))
	// Corners of the rect region are covered, outside stays black.
	assert.Equal(t, black, out.NRGBAAt(39, 50))
	assert.Equal(t, black, out.NRGBAAt(61, 50))
}

func TestPaintTranslatePercent(t *testing.T) {
	// rect 50px wide; 10% translate = 5px shift right and down.
	dev := &catalog.Device{
		ID:            "shifted",
		ScreenW:       50,
		ScreenH:       50,
		AtlasSize:     100,
		UV:            catalog.UVRect{UMin: 0.25, VMin: 0.25, UMax: 0.75, VMax: 0.75},
		TranslateXPct: 0.1,
		TranslateY:    5,
	}
	out, err := Paint(solid(50, 50, red), dev, nil)
	require.NoError(t, err)
	assert.Equal(t, black, out.NRGBAAt(27, 50))
	assert.Equal(t, red, out.NRGBAAt(30, 50))
	assert.Equal(t, red, out.NRGBAAt(79, 79))
	assert.Equal(t, black, out.NRGBAAt(50, 27))
}

func TestPaintDefaultAtlasSideIsScreenWidth(t *testing.T) {
	dev := &catalog.Device{
		ID:      "defside",
		ScreenW: 64,
		ScreenH: 32,
		UV:      catalog.UVRect{UMin: 0, VMin: 0, UMax: 1, VMax: 1},
	}
	out, err := Paint(nil, dev, nil)
	require.NoError(t, err)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 64, out.Bounds().Dy())
	// No user image: the screen raster is plain opaque black.
	assert.Equal(t, black, out.NRGBAAt(32, 32))
}

func TestOddQuarterTurn(t *testing.T) {
	assert.False(t, oddQuarterTurn(0))
	assert.True(t, oddQuarterTurn(math.Pi/2))
	assert.False(t, oddQuarterTurn(math.Pi))
	assert.True(t, oddQuarterTurn(3*math.Pi/2))
	assert.True(t, oddQuarterTurn(-math.Pi/2))
	assert.False(t, oddQuarterTurn(0.3))
}
