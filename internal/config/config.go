// Package config holds the run configuration for the mockup tools:
// a JSON file with CLI flag overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds configurable paths and render settings.
type Config struct {
	// Paths
	AssetsDir   string `json:"assets_dir"`   // root of per-device art folders
	CatalogFile string `json:"catalog_file"` // optional TOML catalog overriding the embedded one
	OutputDir   string `json:"output_dir"`

	// Render settings
	Format  string `json:"format"` // "webp" or "png"
	Workers int    `json:"workers"`
	SheetW  int    `json:"sheet_w"`
	SheetH  int    `json:"sheet_h"`
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetsDir string
	OutputDir string
	Format    string
	Workers   int
}

// Resolve fills empty fields with auto-detected defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetsDir != "" {
		c.AssetsDir = flags.AssetsDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.AssetsDir == "" {
		c.AssetsDir = detectAssetsDir()
	}

	if c.AssetsDir != "" {
		if c.CatalogFile != "" && !filepath.IsAbs(c.CatalogFile) {
			c.CatalogFile = filepath.Join(c.AssetsDir, c.CatalogFile)
		}
		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.AssetsDir, "renders")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.AssetsDir, c.OutputDir)
		}
	} else if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.SheetW <= 0 {
		c.SheetW = 2560
	}
	if c.SheetH <= 0 {
		c.SheetH = 1600
	}
}

// detectAssetsDir probes for a devices/ folder near the executable and
// the working directory.
func detectAssetsDir() string {
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if hasDevices(base) {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	for _, base := range []string{cwd, filepath.Dir(cwd)} {
		if hasDevices(base) {
			return base
		}
	}
	return ""
}

func hasDevices(base string) bool {
	info, err := os.Stat(filepath.Join(base, "devices"))
	return err == nil && info.IsDir()
}
