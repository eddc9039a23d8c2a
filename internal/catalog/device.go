package catalog

// UVRect is a sub-region of a texture atlas in normalized (0..1)
// coordinates, origin at the bottom-left.
type UVRect struct {
	UMin float64 `toml:"u_min"`
	VMin float64 `toml:"v_min"`
	UMax float64 `toml:"u_max"`
	VMax float64 `toml:"v_max"`
}

// IsZero reports whether the rect was never configured.
func (r UVRect) IsZero() bool {
	return r == UVRect{}
}

// BodyMaterial describes a tint applied to a named non-screen material on
// the device's 3D model. Nil factor pointers mean "leave untouched".
type BodyMaterial struct {
	Name            string     `toml:"name"`
	Color           [4]float64 `toml:"color"`
	MetallicFactor  *float64   `toml:"metallic_factor"`
	RoughnessFactor *float64   `toml:"roughness_factor"`
	EmissiveFactor  *float64   `toml:"emissive_factor"`
	Hide            bool       `toml:"hide"`
}

// Device is an immutable descriptor for one mockup device, created once at
// startup from the catalog and never mutated afterwards.
type Device struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`

	// 2D assets: {AssetDir}/{AssetPrefix}_bg.<ext> and
	// {AssetDir}/{AssetPrefix}_screenmask.<ext>. Has2D false means the
	// device is 3D-only and the asset cache returns nil immediately.
	Has2D       bool   `toml:"has_2d"`
	AssetDir    string `toml:"asset_dir"`
	AssetPrefix string `toml:"asset_prefix"`

	// Nominal screen size in pixels; the fallback source of screen
	// dimensions for devices without 2D assets.
	ScreenW int `toml:"screen_w"`
	ScreenH int `toml:"screen_h"`

	// Vertical offset between the mask's coordinate space and the
	// background art (status-bar chrome and the like).
	ChromeOffset int `toml:"chrome_offset"`

	// 3D model support.
	ModelPath           string         `toml:"model_path"`
	ScreenMaterial      string         `toml:"screen_material"` // optional explicit binding
	UV                  UVRect         `toml:"uv"`
	AtlasSize           int            `toml:"atlas_size"` // 0 = screen width
	Rotation            float64        `toml:"rotation"`   // radians
	ScaleX              float64        `toml:"scale_x"`    // 0 treated as 1
	ScaleY              float64        `toml:"scale_y"`
	TranslateX          float64        `toml:"translate_x"` // atlas pixels
	TranslateY          float64        `toml:"translate_y"`
	TranslateXPct       float64        `toml:"translate_x_pct"` // fraction of rect size
	TranslateYPct       float64        `toml:"translate_y_pct"`
	ScreenTextureOffset int            `toml:"screen_texture_offset"`
	ScreenUnlit         bool           `toml:"screen_unlit"`
	EmissiveStrength    float64        `toml:"emissive_strength"`
	PreferredSlot       string         `toml:"preferred_slot"`
	BodyMaterials       []BodyMaterial `toml:"body_materials"`

	// Placement on the combined preview sheet.
	SheetX     int     `toml:"sheet_x"`
	SheetY     int     `toml:"sheet_y"`
	SheetScale float64 `toml:"sheet_scale"` // 0 treated as 1
}

// Has3D reports whether the device declares a 3D model.
func (d *Device) Has3D() bool {
	return d.ModelPath != ""
}

// EffectiveScale returns the extra scale factors with zero values
// normalized to 1.
func (d *Device) EffectiveScale() (sx, sy float64) {
	sx, sy = d.ScaleX, d.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
