// maskinfo prints the mask bounds and derived screen geometry for a
// device's 2D assets. Useful when calibrating chrome offsets.
package main

import (
	"flag"
	"fmt"
	"os"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/geometry"
)

func main() {
	assetsDir := flag.String("assets", ".", "Assets root directory")
	catalogFile := flag.String("catalog", "", "TOML device catalog")
	deviceID := flag.String("device", "", "Device ID (required)")
	srcW := flag.Float64("srcw", 0, "Optional source image width for a cover-fit preview")
	srcH := flag.Float64("srch", 0, "Optional source image height for a cover-fit preview")
	flag.Parse()

	if *deviceID == "" {
		fmt.Fprintln(os.Stderr, "Usage: maskinfo -device <id> [-assets dir]")
		os.Exit(1)
	}

	cat, err := loadCatalog(*catalogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	dev := cat.Get(*deviceID)
	if dev == nil {
		fmt.Fprintf(os.Stderr, "Unknown device: %s\n", *deviceID)
		os.Exit(1)
	}

	cache := assets.NewCache(*assetsDir)
	a, err := cache.Load(dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if a == nil {
		fmt.Printf("%s: no 2D assets\n", dev.ID)
		os.Exit(0)
	}

	bg := a.Background.Bounds()
	fmt.Printf("Device:       %s (%s)\n", dev.ID, dev.Name)
	fmt.Printf("Background:   %dx%d\n", bg.Dx(), bg.Dy())
	fmt.Printf("Mask bounds:  x=%d y=%d w=%d h=%d\n", a.Bounds.X, a.Bounds.Y, a.Bounds.W, a.Bounds.H)
	fmt.Printf("Chrome off:   %d\n", dev.ChromeOffset)
	fmt.Printf("Nominal size: %dx%d\n", dev.ScreenW, dev.ScreenH)

	if *srcW > 0 && *srcH > 0 {
		fit := geometry.CoverFit(*srcW, *srcH, float64(a.Bounds.W), float64(a.Bounds.H))
		fmt.Printf("Cover-fit %gx%g: draw %.1fx%.1f at offset (%.1f, %.1f)\n",
			*srcW, *srcH, fit.DrawW, fit.DrawH, fit.OffsetX, fit.OffsetY)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}
