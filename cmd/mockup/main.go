package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/batch"
	"device-mockup-renderer/internal/capture"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/config"
	"device-mockup-renderer/internal/logging"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetsDir := flag.String("assets", "", "Assets root directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: <assets>/renders)")
	catalogFile := flag.String("catalog", "", "TOML device catalog merged over the built-in one")
	source := flag.String("source", "", "Source image file to put on the screens")
	sourceURL := flag.String("url", "", "URL to screenshot per device as the source image")
	deviceIDs := flag.String("devices", "", "Comma-separated device IDs (default: all)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	sheet := flag.Bool("sheet", false, "Also write a combined preview sheet (sheet.png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *catalogFile != "" {
		cfg.CatalogFile = *catalogFile
	}
	cfg.Resolve(config.Flags{
		AssetsDir: *assetsDir,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})

	cat, err := loadCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	devices := cat.Devices()
	if *deviceIDs != "" {
		var filtered []*catalog.Device
		for _, id := range strings.Split(*deviceIDs, ",") {
			d := cat.Get(strings.TrimSpace(id))
			if d == nil {
				fmt.Fprintf(os.Stderr, "Unknown device: %s\n", id)
				os.Exit(1)
			}
			filtered = append(filtered, d)
		}
		devices = filtered
	}
	if len(devices) == 0 {
		fmt.Println("No devices to render.")
		os.Exit(0)
	}

	src, closeSrc, err := buildSource(*source, *sourceURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if closeSrc != nil {
		defer closeSrc()
	}

	fmt.Printf("Device Mockup Renderer\n")
	fmt.Printf("Devices: %d, Workers: %d, Format: %s\n", len(devices), cfg.Workers, cfg.Format)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		Assets:    assets.NewCache(cfg.AssetsDir),
		Source:    src,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Workers:   cfg.Workers,
	}

	results := batch.Run(batchCfg, devices)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(devices))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors {
			fmt.Printf("  %s: %s\n", e.DeviceID, e.Error)
		}
	}

	os.MkdirAll(cfg.OutputDir, 0755)
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if *sheet {
		if err := writeSheet(batchCfg, devices, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sheet render failed: %v\n", err)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" {
		return catalog.Load(cfg.CatalogFile)
	}
	return catalog.Default()
}

// buildSource returns the per-device source image provider: a fixed file,
// a URL screenshot per screen size, or nothing (bare devices).
func buildSource(file, url string) (batch.Source, func(), error) {
	switch {
	case file != "" && url != "":
		return nil, nil, fmt.Errorf("use either -source or -url, not both")
	case file != "":
		img, err := assets.LoadImage(file)
		if err != nil {
			return nil, nil, err
		}
		return func(*catalog.Device) (image.Image, error) { return img, nil }, nil, nil
	case url != "":
		cap, err := capture.New(context.Background(), url)
		if err != nil {
			return nil, nil, err
		}
		src := func(dev *catalog.Device) (image.Image, error) {
			w, h := dev.ScreenW, dev.ScreenH
			if w <= 0 || h <= 0 {
				return nil, nil
			}
			return cap.Screenshot(w, h)
		}
		return src, cap.Close, nil
	default:
		return func(*catalog.Device) (image.Image, error) { return nil, nil }, nil, nil
	}
}

func writeSheet(batchCfg batch.Config, devices []*catalog.Device, cfg config.Config) error {
	sheetImg, err := batch.RenderSheet(batchCfg, devices, cfg.SheetW, cfg.SheetH)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, sheetImg); err != nil {
		return err
	}
	fmt.Printf("Sheet: %s\n", path)
	return nil
}
