// atlasdump paints a device's screen texture atlas with a source image
// and writes it as PNG, running the full material pipeline against the
// software engine so the applied slots can be inspected.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/material/softmat"
	"device-mockup-renderer/internal/mockup"
)

func main() {
	assetsDir := flag.String("assets", ".", "Assets root directory")
	catalogFile := flag.String("catalog", "", "TOML device catalog")
	deviceID := flag.String("device", "", "Device ID (required)")
	source := flag.String("source", "", "Source image file (required)")
	out := flag.String("out", "atlas.png", "Output PNG path")
	flag.Parse()

	if *deviceID == "" || *source == "" {
		fmt.Fprintln(os.Stderr, "Usage: atlasdump -device <id> -source <image> [-out atlas.png]")
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

	user, err := assets.LoadImage(*source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Run the real orchestrator against the software engine with a
	// stand-in screen material.
	eng := softmat.NewEngine()
	r := mockup.New(assets.NewCache(*assetsDir), eng)
	r.SetSourceImage(user)

	screen := softmat.NewMaterial("ScreenBG")
	model := softmat.NewModel(screen)

	slots, err := r.PaintScreenTexture(model, dev, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Applied slots: %v\n", slots)

	var dumped bool
	for _, slot := range slots {
		tex, ok := screen.Textures[slot].(*softmat.Texture)
		if !ok {
			continue
		}
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		if err := png.Encode(f, tex.Image); err != nil {
			f.Close()
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		f.Close()
		b := tex.Image.Bounds()
		fmt.Printf("Atlas: %s (%dx%d, slot %s)\n", *out, b.Dx(), b.Dy(), slot)
		dumped = true
		break
	}
	if !dumped {
		fmt.Fprintln(os.Stderr, "No texture applied.")
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}
