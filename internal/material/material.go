// Package material defines the capability surface of an external 3D
// engine's materials and the protocol for writing textures and factors
// into them without knowing their concrete mutation shape.
package material

import (
	"errors"
	"image"
)

// Color is an immutable RGBA value with components in 0..1. It is used
// directly as a cache key, so equality is exact component equality.
type Color [4]float64

// NRGBA8 converts the color to 8-bit channels.
func (c Color) NRGBA8() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Slot names a texture binding point on a material.
type Slot string

const (
	SlotBaseColor         Slot = "baseColorTexture"
	SlotEmissive          Slot = "emissiveTexture"
	SlotNormal            Slot = "normalTexture"
	SlotMetallicRoughness Slot = "metallicRoughnessTexture"
	SlotOcclusion         Slot = "occlusionTexture"
)

// TextureHandle is an opaque texture resource owned by the engine.
type TextureHandle interface{}

// Engine is the narrow surface of the external 3D display engine.
type Engine interface {
	CreateTexture(img *image.NRGBA) (TextureHandle, error)
}

// RenderRequester is implemented by engines that accept a redraw hint.
type RenderRequester interface {
	RequestRender()
}

// Model is a loaded 3D model handle exposing its materials.
type Model interface {
	Materials() []Material
}

// Material is the minimal guaranteed surface of a model material.
// Mutation goes through the optional capability interfaces below; a
// concrete engine adapter implements whichever subset its material
// objects support.
type Material interface {
	Name() string
}

// TextureSetter is a dedicated texture setter on the material itself.
type TextureSetter interface {
	SetTexture(slot Slot, tex TextureHandle) error
}

// PBRSurface is a nested metallic-roughness sub-object.
type PBRSurface interface {
	SetTexture(slot Slot, tex TextureHandle) error
	SetFactor(name string, value float64) error
	SetColorFactor(name string, c Color) error
}

// PBRAccessor exposes a nested PBR sub-object; PBR may return nil when
// the material has none.
type PBRAccessor interface {
	PBR() PBRSurface
}

// TextureInfoSetter writes a texture through a slot's texture-info
// sub-object.
type TextureInfoSetter interface {
	SetTexture(tex TextureHandle) error
}

// TextureInfoAccessor exposes per-slot texture-info sub-objects;
// TextureInfo may return nil for unsupported slots.
type TextureInfoAccessor interface {
	TextureInfo(slot Slot) TextureInfoSetter
}

// PropertyWriter is direct property assignment, the last-resort shape.
// Implementations may reject read-only surfaces with an error.
type PropertyWriter interface {
	SetProperty(name string, value any) error
}

// FactorSetter writes scalar and color factors on the material itself.
type FactorSetter interface {
	SetFactor(name string, value float64) error
	SetColorFactor(name string, c Color) error
}

// AlphaModeSetter switches the material's alpha mode ("OPAQUE", "BLEND").
type AlphaModeSetter interface {
	SetAlphaMode(mode string) error
}

// VisibilitySetter hides or shows the material's geometry.
type VisibilitySetter interface {
	SetVisible(visible bool) error
}

// ErrTextureApplicationExhausted is returned when every slot and
// capability candidate rejected a texture write. This is the one hard
// protocol failure: it means the engine's material shape is unsupported
// and the mockup would be visibly broken.
var ErrTextureApplicationExhausted = errors.New("material: texture application exhausted")

// ErrFactorApplicationExhausted is the factor-write analogue; callers
// normally log and continue.
var ErrFactorApplicationExhausted = errors.New("material: factor application exhausted")
