package material

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake materials covering each capability shape.

type setterMat struct {
	namedMat
	allowed map[Slot]bool
	applied map[Slot]TextureHandle
}

func newSetterMat(name string, allowed ...Slot) *setterMat {
	m := &setterMat{
		namedMat: namedMat(name),
		allowed:  make(map[Slot]bool),
		applied:  make(map[Slot]TextureHandle),
	}
	for _, s := range allowed {
		m.allowed[s] = true
	}
	return m
}

func (m *setterMat) SetTexture(slot Slot, tex TextureHandle) error {
	if !m.allowed[slot] {
		return errors.New("slot not supported")
	}
	m.applied[slot] = tex
	return nil
}

type pbrSub struct {
	textures map[Slot]TextureHandle
	factors  map[string]float64
	colors   map[string]Color
}

func newPBRSub() *pbrSub {
	return &pbrSub{
		textures: make(map[Slot]TextureHandle),
		factors:  make(map[string]float64),
		colors:   make(map[string]Color),
	}
}

func (p *pbrSub) SetTexture(slot Slot, tex TextureHandle) error {
	p.textures[slot] = tex
	return nil
}
func (p *pbrSub) SetFactor(name string, v float64) error {
	p.factors[name] = v
	return nil
}
func (p *pbrSub) SetColorFactor(name string, c Color) error {
	p.colors[name] = c
	return nil
}

type pbrMat struct {
	namedMat
	sub *pbrSub
}

func (m *pbrMat) PBR() PBRSurface {
	if m.sub == nil {
		return nil
	}
	return m.sub
}

type infoSetter struct {
	tex TextureHandle
}

func (i *infoSetter) SetTexture(tex TextureHandle) error {
	i.tex = tex
	return nil
}

type infoMat struct {
	namedMat
	infos map[Slot]*infoSetter
}

func (m *infoMat) TextureInfo(slot Slot) TextureInfoSetter {
	info, ok := m.infos[slot]
	if !ok {
		return nil // interface nil, not a typed nil pointer
	}
	return info
}

type propMat struct {
	namedMat
	readOnly bool
	props    map[string]any
}

func (m *propMat) SetProperty(name string, v any) error {
	if m.readOnly {
		return errors.New("read-only surface")
	}
	if m.props == nil {
		m.props = make(map[string]any)
	}
	m.props[name] = v
	return nil
}

func TestApplyTextureDedicatedSetter(t *testing.T) {
	m := newSetterMat("Screen", SlotBaseColor)
	tex := "tex-1"

	slot, err := ApplyTexture(m, "", tex)
	require.NoError(t, err)
	assert.Equal(t, SlotBaseColor, slot)
	assert.Equal(t, tex, m.applied[SlotBaseColor])
}

func TestApplyTexturePreferredSlotFirst(t *testing.T) {
	m := newSetterMat("Screen", SlotBaseColor, SlotEmissive)

	slot, err := ApplyTexture(m, SlotEmissive, "tex")
	require.NoError(t, err)
	assert.Equal(t, SlotEmissive, slot)
}

func TestApplyTextureFallsBackAcrossSlots(t *testing.T) {
	// Preferred slot rejected → baseColor rejected → emissive accepted.
	m := newSetterMat("Screen", SlotEmissive)

	slot, err := ApplyTexture(m, SlotNormal, "tex")
	require.NoError(t, err)
	assert.Equal(t, SlotEmissive, slot)
}

func TestApplyTextureNestedPBR(t *testing.T) {
	m := &pbrMat{namedMat: "Screen", sub: newPBRSub()}

	slot, err := ApplyTexture(m, "", "tex")
	require.NoError(t, err)
	assert.Equal(t, SlotBaseColor, slot)
	assert.Equal(t, "tex", m.sub.textures[SlotBaseColor])
}

func TestApplyTextureNilPBRSkipped(t *testing.T) {
	m := &pbrMat{namedMat: "Screen"}

	_, err := ApplyTexture(m, "", "tex")
	assert.ErrorIs(t, err, ErrTextureApplicationExhausted)
}

func TestApplyTextureTextureInfo(t *testing.T) {
	info := &infoSetter{}
	m := &infoMat{namedMat: "Screen", infos: map[Slot]*infoSetter{SlotEmissive: info}}

	slot, err := ApplyTexture(m, "", "tex")
	require.NoError(t, err)
	assert.Equal(t, SlotEmissive, slot)
	assert.Equal(t, "tex", info.tex)
}

func TestApplyTextureDirectProperty(t *testing.T) {
	m := &propMat{namedMat: "Screen"}

	slot, err := ApplyTexture(m, "", "tex")
	require.NoError(t, err)
	assert.Equal(t, SlotBaseColor, slot)
	assert.Equal(t, "tex", m.props[string(SlotBaseColor)])
}

func TestApplyTextureExhausted(t *testing.T) {
	m := &propMat{namedMat: "Sealed", readOnly: true}

	_, err := ApplyTexture(m, SlotNormal, "tex")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTextureApplicationExhausted)
	assert.Contains(t, err.Error(), "Sealed")
}

func TestApplyTextureNoCapabilities(t *testing.T) {
	_, err := ApplyTexture(namedMat("Bare"), "", "tex")
	assert.ErrorIs(t, err, ErrTextureApplicationExhausted)
}

func TestApplyFactorChain(t *testing.T) {
	pm := &pbrMat{namedMat: "Body", sub: newPBRSub()}
	require.NoError(t, ApplyFactor(pm, "metallicFactor", 0.8))
	assert.Equal(t, 0.8, pm.sub.factors["metallicFactor"])

	dp := &propMat{namedMat: "Body"}
	require.NoError(t, ApplyFactor(dp, "roughnessFactor", 0.2))
	assert.Equal(t, 0.2, dp.props["roughnessFactor"])

	err := ApplyFactor(namedMat("Bare"), "metallicFactor", 1)
	assert.ErrorIs(t, err, ErrFactorApplicationExhausted)
}

func TestApplyColorFactorChain(t *testing.T) {
	pm := &pbrMat{namedMat: "Body", sub: newPBRSub()}
	c := Color{0.5, 0.25, 0.1, 1}
	require.NoError(t, ApplyColorFactor(pm, "baseColorFactor", c))
	assert.Equal(t, c, pm.sub.colors["baseColorFactor"])

	err := ApplyColorFactor(namedMat("Bare"), "baseColorFactor", c)
	assert.ErrorIs(t, err, ErrFactorApplicationExhausted)
}

func TestSlotCandidates(t *testing.T) {
	assert.Equal(t, []Slot{SlotBaseColor, SlotEmissive}, slotCandidates(""))
	assert.Equal(t, []Slot{SlotBaseColor, SlotEmissive}, slotCandidates(SlotBaseColor))
	assert.Equal(t, []Slot{SlotEmissive, SlotBaseColor}, slotCandidates(SlotEmissive))
	assert.Equal(t, []Slot{SlotNormal, SlotBaseColor, SlotEmissive}, slotCandidates(SlotNormal))
}
