package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-mockup-renderer/internal/catalog"
)

type namedMat string

func (m namedMat) Name() string { return string(m) }

type indexedMat struct {
	name  string
	index int
}

func (m *indexedMat) Name() string { return m.name }

func mats(names ...string) []Material {
	out := make([]Material, len(names))
	for i, n := range names {
		out[i] = namedMat(n)
	}
	return out
}

func TestScoreScreenName(t *testing.T) {
	tests := []struct {
		name  string
		score int
	}{
		{"ScreenBG", 8},
		{"screen_bg", 8},
		{"Screen", 6},
		{"Display", 4},
		{"Panel", 2},
		{"Glass", -3},
		{"ScreenGlass", 3},
		{"DisplayPanel", 6},
		{"Body", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, scoreScreenName(tt.name), tt.name)
	}
}

func TestResolveScreenHeuristic(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d1"}

	m := b.ResolveScreen(dev, mats("Glass", "ScreenBG", "Panel"))
	require.NotNil(t, m)
	assert.Equal(t, "ScreenBG", m.Name())
}

func TestResolveScreenTieEarliestWins(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d2"}

	a := &indexedMat{name: "Screen", index: 0}
	c := &indexedMat{name: "Screen", index: 1}
	m := b.ResolveScreen(dev, []Material{a, c})
	assert.Same(t, a, m)
}

func TestResolveScreenFloorFallsBackToFirst(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d3"}

	m := b.ResolveScreen(dev, mats("Glass", "Body", "Trim"))
	require.NotNil(t, m)
	assert.Equal(t, "Glass", m.Name())
}

func TestResolveScreenEmptyList(t *testing.T) {
	b := NewBindings()
	assert.Nil(t, b.ResolveScreen(&catalog.Device{ID: "d4"}, nil))
}

func TestResolveScreenCachedFastPath(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d5"}

	first := b.ResolveScreen(dev, mats("Body", "Screen"))
	require.Equal(t, "Screen", first.Name())

	// The binding now short-circuits scoring: a higher scorer added later
	// is ignored while the bound name still exists.
	m := b.ResolveScreen(dev, mats("ScreenBG", "Screen"))
	assert.Equal(t, "Screen", m.Name())
}

func TestResolveScreenBindingInvalidation(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d6"}

	first := b.ResolveScreen(dev, mats("Body", "OldScreen"))
	require.Equal(t, "OldScreen", first.Name())

	// Bound name gone → re-resolve and rebind.
	m := b.ResolveScreen(dev, mats("Body", "NewDisplay"))
	assert.Equal(t, "NewDisplay", m.Name())
	name, ok := b.get(dev.ID)
	assert.True(t, ok)
	assert.Equal(t, "NewDisplay", name)
}

func TestResolveScreenExplicitCatalogBinding(t *testing.T) {
	b := NewBindings()
	dev := &catalog.Device{ID: "d7", ScreenMaterial: "LCD"}

	m := b.ResolveScreen(dev, mats("Screen", "LCD"))
	require.NotNil(t, m)
	assert.Equal(t, "LCD", m.Name())
}
