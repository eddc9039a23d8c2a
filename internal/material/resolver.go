package material

import (
	"strings"
	"sync"

	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/logging"
)

// Bindings memoizes the resolved screen-material name per device. The
// binding survives for the process lifetime and is re-resolved only when
// the bound name no longer exists in a freshly loaded model.
type Bindings struct {
	mu    sync.Mutex
	names map[string]string // device ID → material name
}

// NewBindings creates an empty binding store.
func NewBindings() *Bindings {
	return &Bindings{names: make(map[string]string)}
}

func (b *Bindings) get(deviceID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name, ok := b.names[deviceID]
	return name, ok
}

func (b *Bindings) set(deviceID, name string) {
	b.mu.Lock()
	b.names[deviceID] = name
	b.mu.Unlock()
}

// Reset clears all bindings.
func (b *Bindings) Reset() {
	b.mu.Lock()
	b.names = make(map[string]string)
	b.mu.Unlock()
}

// ResolveScreen finds the material representing the device's screen.
// A cached (or catalog-declared) name is matched exactly first; failing
// that, every material is scored by name heuristics and the first
// strict-maximum scorer wins. With no scorer above the floor the first
// material is returned, or nil for an empty list. The winning name is
// written back into the binding store.
func (b *Bindings) ResolveScreen(dev *catalog.Device, mats []Material) Material {
	if len(mats) == 0 {
		return nil
	}

	cached, ok := b.get(dev.ID)
	if !ok && dev.ScreenMaterial != "" {
		cached, ok = dev.ScreenMaterial, true
	}
	if ok {
		for _, m := range mats {
			if m.Name() == cached {
				return m
			}
		}
		// Bound name vanished from this model; fall through and
		// re-resolve.
	}

	best := mats[0]
	bestScore := scoreScreenName(best.Name())
	for _, m := range mats[1:] {
		if s := scoreScreenName(m.Name()); s > bestScore {
			best, bestScore = m, s
		}
	}
	if bestScore <= 0 {
		best = mats[0]
	}

	logging.Logger().Debug("screen material resolved",
		"device", dev.ID, "material", best.Name(), "score", bestScore)
	b.set(dev.ID, best.Name())
	return best
}

// scoreScreenName rates how likely a material name is to be the screen
// surface. Comparison is case-insensitive.
func scoreScreenName(name string) int {
	n := strings.ToLower(name)
	score := 0
	switch {
	case strings.Contains(n, "screen") && strings.Contains(n, "bg"):
		score += 8
	case strings.Contains(n, "screen"):
		score += 6
	}
	if strings.Contains(n, "display") {
		score += 4
	}
	if strings.Contains(n, "panel") {
		score += 2
	}
	if strings.Contains(n, "glass") {
		score -= 3
	}
	return score
}
