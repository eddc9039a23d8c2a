package material

import (
	"image"
	"sync"

	"device-mockup-renderer/internal/logging"
)

// TextureCache memoizes 1×1 solid-color textures keyed by exact RGBA
// tuple. Entries live for the process lifetime; for a given color the
// underlying texture is created exactly once.
type TextureCache struct {
	engine Engine

	mu      sync.Mutex
	entries map[Color]TextureHandle
}

// NewTextureCache creates a cache backed by the given engine.
func NewTextureCache(engine Engine) *TextureCache {
	return &TextureCache{
		engine:  engine,
		entries: make(map[Color]TextureHandle),
	}
}

// GetOrCreate returns the solid texture for c, rendering and registering
// it on first use. Returns nil when the engine cannot create textures;
// callers must tolerate absence.
func (tc *TextureCache) GetOrCreate(c Color) TextureHandle {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tex, ok := tc.entries[c]; ok {
		return tex
	}

	px := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	r, g, b, a := c.NRGBA8()
	px.Pix[0], px.Pix[1], px.Pix[2], px.Pix[3] = r, g, b, a

	tex, err := tc.engine.CreateTexture(px)
	if err != nil {
		logging.Logger().Warn("solid texture creation failed",
			"color", c, "error", err)
		return nil
	}
	tc.entries[c] = tex
	return tex
}

// Reset drops all cached handles.
func (tc *TextureCache) Reset() {
	tc.mu.Lock()
	tc.entries = make(map[Color]TextureHandle)
	tc.mu.Unlock()
}
