// Package mockup orchestrates the compositing core: flat 2D mockups,
// screen texture painting onto 3D model materials, and body tinting.
package mockup

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/atlas"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/compositor"
	"device-mockup-renderer/internal/logging"
	"device-mockup-renderer/internal/material"
)

// ErrSuperseded is returned when a paint finished after a newer source
// image arrived; the stale result is discarded, nothing is applied.
var ErrSuperseded = errors.New("mockup: paint superseded by newer source image")

// DefaultScreenColor is the near-black shown on screens before any user
// image is set.
var DefaultScreenColor = material.Color{0.02, 0.02, 0.02, 1}

// Renderer owns the caches and per-device state for one engine binding.
type Renderer struct {
	assets   *assets.Cache
	engine   material.Engine
	bindings *material.Bindings
	textures *material.TextureCache

	mu         sync.Mutex
	user       image.Image
	imageGen   uint64            // bumped on every source-image change
	paintedGen map[string]uint64 // device ID → imageGen last painted
	dirty      map[string]bool   // explicit invalidations
	applied    map[string][]material.Slot
}

// New creates a renderer over the given asset cache and engine.
func New(assetCache *assets.Cache, engine material.Engine) *Renderer {
	return &Renderer{
		assets:     assetCache,
		engine:     engine,
		bindings:   material.NewBindings(),
		textures:   material.NewTextureCache(engine),
		paintedGen: make(map[string]uint64),
		dirty:      make(map[string]bool),
		applied:    make(map[string][]material.Slot),
	}
}

// SetSourceImage replaces the user image and invalidates every painted
// screen texture. In-flight paints started before this call will see
// their results discarded.
func (r *Renderer) SetSourceImage(img image.Image) {
	r.mu.Lock()
	r.user = img
	r.imageGen++
	r.mu.Unlock()
}

// SourceImage returns the current user image, possibly nil.
func (r *Renderer) SourceImage() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

// MarkScreenDirty forces the next paint for the device to regenerate its
// texture even if the source image is unchanged.
func (r *Renderer) MarkScreenDirty(deviceID string) {
	r.mu.Lock()
	r.dirty[deviceID] = true
	r.mu.Unlock()
}

// RenderMockup draws the flat 2D mockup for dev into dst using the
// current source image. Missing 2D assets leave dst blank; that is not
// an error.
func (r *Renderer) RenderMockup(dst *image.NRGBA, dev *catalog.Device) error {
	a, err := r.assets.Load(dev)
	if err != nil {
		return fmt.Errorf("mockup: assets for %s: %w", dev.ID, err)
	}
	compositor.Render(dst, a, r.SourceImage(), dev.ChromeOffset)
	return nil
}

// ResolveScreenMaterial finds (and memoizes) the screen material of the
// model for dev.
func (r *Renderer) ResolveScreenMaterial(dev *catalog.Device, model material.Model) material.Material {
	return r.bindings.ResolveScreen(dev, model.Materials())
}

// PaintScreenTexture regenerates the screen texture atlas for dev and
// writes it into the model's screen material. The paint is skipped —
// returning the previously applied slots — unless the source image
// changed, the device was marked dirty, or force is set. A paint whose
// result arrives after a newer source image returns ErrSuperseded.
func (r *Renderer) PaintScreenTexture(model material.Model, dev *catalog.Device, force bool) ([]material.Slot, error) {
	r.mu.Lock()
	gen := r.imageGen
	user := r.user
	pg, painted := r.paintedGen[dev.ID]
	stale := r.dirty[dev.ID] || !painted || pg != gen
	prev := r.applied[dev.ID]
	r.mu.Unlock()

	if !stale && !force {
		return prev, nil
	}

	mat := r.bindings.ResolveScreen(dev, model.Materials())
	if mat == nil {
		logging.Logger().Warn("no screen material on model", "device", dev.ID)
		r.mu.Lock()
		if r.imageGen == gen {
			r.paintedGen[dev.ID] = gen
			delete(r.dirty, dev.ID)
			delete(r.applied, dev.ID)
		}
		r.mu.Unlock()
		return nil, nil
	}

	a, err := r.assets.Load(dev)
	if err != nil {
		return nil, fmt.Errorf("mockup: assets for %s: %w", dev.ID, err)
	}

	atlasImg, err := atlas.Paint(user, dev, a)
	if err != nil {
		return nil, fmt.Errorf("mockup: paint %s: %w", dev.ID, err)
	}

	tex, err := r.engine.CreateTexture(atlasImg)
	if err != nil {
		return nil, fmt.Errorf("mockup: create texture for %s: %w", dev.ID, err)
	}

	slots, err := r.applyScreen(mat, dev, tex)
	if err != nil {
		return nil, err
	}

	// Request fencing: a newer source image invalidates this paint.
	r.mu.Lock()
	if r.imageGen != gen {
		r.mu.Unlock()
		logging.Logger().Debug("stale paint discarded", "device", dev.ID)
		return nil, ErrSuperseded
	}
	r.paintedGen[dev.ID] = gen
	delete(r.dirty, dev.ID)
	r.applied[dev.ID] = slots
	r.mu.Unlock()

	r.requestRender()
	return slots, nil
}

// applyScreen writes the texture and the unlit-screen factors into the
// resolved screen material.
func (r *Renderer) applyScreen(mat material.Material, dev *catalog.Device, tex material.TextureHandle) ([]material.Slot, error) {
	preferred := material.Slot(dev.PreferredSlot)
	if preferred == "" && dev.ScreenUnlit {
		preferred = material.SlotEmissive
	}

	slot, err := material.ApplyTexture(mat, preferred, tex)
	if err != nil {
		return nil, err
	}
	slots := []material.Slot{slot}

	if dev.ScreenUnlit {
		// Kill the lit response so the screen reads at full brightness.
		strength := dev.EmissiveStrength
		if strength == 0 {
			strength = 1
		}
		if err := material.ApplyColorFactor(mat, "emissiveFactor",
			material.Color{strength, strength, strength, 1}); err != nil {
			logging.Logger().Warn("emissive factor rejected",
				"device", dev.ID, "error", err)
		}
		if err := material.ApplyColorFactor(mat, "baseColorFactor",
			material.Color{0, 0, 0, 1}); err != nil {
			logging.Logger().Warn("base color factor rejected",
				"device", dev.ID, "error", err)
		}
		if slot != material.SlotEmissive {
			if s, err := material.ApplyTexture(mat, material.SlotEmissive, tex); err == nil && s == material.SlotEmissive {
				slots = append(slots, s)
			}
		}
	}

	if am, ok := mat.(material.AlphaModeSetter); ok {
		if err := am.SetAlphaMode("OPAQUE"); err != nil {
			logging.Logger().Debug("alpha mode rejected", "device", dev.ID)
		}
	}
	return slots, nil
}

// ApplyBodyMaterialTint applies the device's configured tints to named
// body materials on the model. Materials missing from the model are
// skipped silently; only texture-application exhaustion is an error.
func (r *Renderer) ApplyBodyMaterialTint(model material.Model, dev *catalog.Device) error {
	mats := model.Materials()
	for _, bm := range dev.BodyMaterials {
		mat := findMaterial(mats, bm.Name)
		if mat == nil {
			logging.Logger().Debug("body material not on model",
				"device", dev.ID, "material", bm.Name)
			continue
		}

		if bm.Hide {
			if vs, ok := mat.(material.VisibilitySetter); ok {
				if err := vs.SetVisible(false); err != nil {
					logging.Logger().Warn("hide rejected",
						"device", dev.ID, "material", bm.Name, "error", err)
				}
			}
			continue
		}

		color := material.Color(bm.Color)
		if err := material.ApplyColorFactor(mat, "baseColorFactor", color); err != nil {
			logging.Logger().Warn("tint color rejected",
				"device", dev.ID, "material", bm.Name, "error", err)
		}
		if tex := r.textures.GetOrCreate(color); tex != nil {
			if _, err := material.ApplyTexture(mat, material.SlotBaseColor, tex); err != nil {
				return fmt.Errorf("mockup: tint %s/%s: %w", dev.ID, bm.Name, err)
			}
		}

		applyOptionalFactor(mat, dev.ID, "metallicFactor", bm.MetallicFactor)
		applyOptionalFactor(mat, dev.ID, "roughnessFactor", bm.RoughnessFactor)
		applyOptionalFactor(mat, dev.ID, "emissiveFactor", bm.EmissiveFactor)
	}
	r.requestRender()
	return nil
}

// SetDefaultScreen paints the screen material near-black, for display
// before any source image exists.
func (r *Renderer) SetDefaultScreen(model material.Model, dev *catalog.Device) error {
	mat := r.bindings.ResolveScreen(dev, model.Materials())
	if mat == nil {
		logging.Logger().Warn("no screen material on model", "device", dev.ID)
		return nil
	}

	tex := r.textures.GetOrCreate(DefaultScreenColor)
	if tex == nil {
		return nil
	}
	if _, err := r.applyScreen(mat, dev, tex); err != nil {
		return fmt.Errorf("mockup: default screen %s: %w", dev.ID, err)
	}
	r.requestRender()
	return nil
}

// Reset clears every cache this renderer owns.
func (r *Renderer) Reset() {
	r.assets.Reset()
	r.bindings.Reset()
	r.textures.Reset()
	r.mu.Lock()
	r.paintedGen = make(map[string]uint64)
	r.dirty = make(map[string]bool)
	r.applied = make(map[string][]material.Slot)
	r.mu.Unlock()
}

func (r *Renderer) requestRender() {
	if rr, ok := r.engine.(material.RenderRequester); ok {
		rr.RequestRender()
	}
}

func findMaterial(mats []material.Material, name string) material.Material {
	for _, m := range mats {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func applyOptionalFactor(mat material.Material, deviceID, name string, v *float64) {
	if v == nil {
		return
	}
	if err := material.ApplyFactor(mat, name, *v); err != nil {
		logging.Logger().Warn("factor rejected",
			"device", deviceID, "material", mat.Name(), "factor", name, "error", err)
	}
}
