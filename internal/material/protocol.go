package material

import (
	"fmt"

	"device-mockup-renderer/internal/logging"
)

// ApplyTexture writes tex into the first accepting slot of mat. Slot
// candidates are tried in order: the preferred slot (when non-empty),
// then baseColorTexture, then emissiveTexture, deduplicated. For each
// slot the capability chain runs dedicated setter → nested PBR setter →
// texture-info setter → direct property; the first attempt that does not
// error wins. Only exhausting every slot and capability is an error.
func ApplyTexture(mat Material, preferred Slot, tex TextureHandle) (Slot, error) {
	for _, slot := range slotCandidates(preferred) {
		if trySlot(mat, slot, tex) {
			logging.Logger().Debug("texture applied",
				"material", mat.Name(), "slot", slot)
			return slot, nil
		}
	}
	return "", fmt.Errorf("material %q: %w", mat.Name(), ErrTextureApplicationExhausted)
}

func slotCandidates(preferred Slot) []Slot {
	candidates := []Slot{SlotBaseColor, SlotEmissive}
	if preferred != "" && preferred != SlotBaseColor && preferred != SlotEmissive {
		return append([]Slot{preferred}, candidates...)
	}
	if preferred == SlotEmissive {
		return []Slot{SlotEmissive, SlotBaseColor}
	}
	return candidates
}

// trySlot runs the capability chain for one slot. Individual rejections
// are swallowed; the next candidate is tried.
func trySlot(mat Material, slot Slot, tex TextureHandle) bool {
	if s, ok := mat.(TextureSetter); ok {
		if s.SetTexture(slot, tex) == nil {
			return true
		}
	}
	if acc, ok := mat.(PBRAccessor); ok {
		if pbr := acc.PBR(); pbr != nil {
			if pbr.SetTexture(slot, tex) == nil {
				return true
			}
		}
	}
	if acc, ok := mat.(TextureInfoAccessor); ok {
		if info := acc.TextureInfo(slot); info != nil {
			if info.SetTexture(tex) == nil {
				return true
			}
		}
	}
	if w, ok := mat.(PropertyWriter); ok {
		if w.SetProperty(string(slot), tex) == nil {
			return true
		}
	}
	return false
}

// ApplyFactor writes a scalar factor through the capability chain:
// dedicated factor setter → nested PBR → direct property.
func ApplyFactor(mat Material, name string, value float64) error {
	if s, ok := mat.(FactorSetter); ok {
		if s.SetFactor(name, value) == nil {
			return nil
		}
	}
	if acc, ok := mat.(PBRAccessor); ok {
		if pbr := acc.PBR(); pbr != nil {
			if pbr.SetFactor(name, value) == nil {
				return nil
			}
		}
	}
	if w, ok := mat.(PropertyWriter); ok {
		if w.SetProperty(name, value) == nil {
			return nil
		}
	}
	return fmt.Errorf("material %q: factor %s: %w", mat.Name(), name, ErrFactorApplicationExhausted)
}

// ApplyColorFactor writes a color factor through the same chain.
func ApplyColorFactor(mat Material, name string, c Color) error {
	if s, ok := mat.(FactorSetter); ok {
		if s.SetColorFactor(name, c) == nil {
			return nil
		}
	}
	if acc, ok := mat.(PBRAccessor); ok {
		if pbr := acc.PBR(); pbr != nil {
			if pbr.SetColorFactor(name, c) == nil {
				return nil
			}
		}
	}
	if w, ok := mat.(PropertyWriter); ok {
		if w.SetProperty(name, c) == nil {
			return nil
		}
	}
	return fmt.Errorf("material %q: color factor %s: %w", mat.Name(), name, ErrFactorApplicationExhausted)
}
