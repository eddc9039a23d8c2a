// Package softmat is a software adapter for the material capability
// interfaces: plain structs and a texture registry standing in for a GPU
// engine. It backs tests and the debugging tools.
package softmat

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"device-mockup-renderer/internal/material"
)

// Texture is a registered texture: the raster plus a stable ID.
type Texture struct {
	ID    int
	Image *image.NRGBA
}

// Engine implements material.Engine over an in-memory registry.
type Engine struct {
	mu       sync.Mutex
	textures []*Texture
	renders  atomic.Int64
}

// NewEngine creates an empty software engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CreateTexture registers a copy-free texture handle for img.
func (e *Engine) CreateTexture(img *image.NRGBA) (material.TextureHandle, error) {
	if img == nil {
		return nil, fmt.Errorf("softmat: nil image")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	t := &Texture{ID: len(e.textures), Image: img}
	e.textures = append(e.textures, t)
	return t, nil
}

// RequestRender counts redraw hints.
func (e *Engine) RequestRender() {
	e.renders.Add(1)
}

// TextureCount returns how many textures were created.
func (e *Engine) TextureCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.textures)
}

// RenderRequests returns how many redraw hints were received.
func (e *Engine) RenderRequests() int64 {
	return e.renders.Load()
}

// Model implements material.Model over a fixed material list.
type Model struct {
	mats []material.Material
}

// NewModel builds a model from materials in list order.
func NewModel(mats ...material.Material) *Model {
	return &Model{mats: mats}
}

func (m *Model) Materials() []material.Material {
	return m.mats
}

// Material is a full-capability software material: dedicated setters for
// textures, factors, alpha mode, and visibility.
type Material struct {
	MatName      string
	Textures     map[material.Slot]material.TextureHandle
	Factors      map[string]float64
	ColorFactors map[string]material.Color
	AlphaMode    string
	Visible      bool
}

// NewMaterial creates a visible material with empty slots.
func NewMaterial(name string) *Material {
	return &Material{
		MatName:      name,
		Textures:     make(map[material.Slot]material.TextureHandle),
		Factors:      make(map[string]float64),
		ColorFactors: make(map[string]material.Color),
		AlphaMode:    "OPAQUE",
		Visible:      true,
	}
}

func (m *Material) Name() string {
	return m.MatName
}

func (m *Material) SetTexture(slot material.Slot, tex material.TextureHandle) error {
	switch slot {
	case material.SlotBaseColor, material.SlotEmissive, material.SlotNormal,
		material.SlotMetallicRoughness, material.SlotOcclusion:
		m.Textures[slot] = tex
		return nil
	}
	return fmt.Errorf("softmat: material %s: unknown slot %s", m.MatName, slot)
}

func (m *Material) SetFactor(name string, value float64) error {
	m.Factors[name] = value
	return nil
}

func (m *Material) SetColorFactor(name string, c material.Color) error {
	m.ColorFactors[name] = c
	return nil
}

func (m *Material) SetAlphaMode(mode string) error {
	m.AlphaMode = mode
	return nil
}

func (m *Material) SetVisible(visible bool) error {
	m.Visible = visible
	return nil
}
