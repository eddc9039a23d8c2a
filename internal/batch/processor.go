// Package batch renders mockups for many devices with a worker pool and
// writes the output images plus a manifest.
package batch

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"device-mockup-renderer/internal/assets"
	"device-mockup-renderer/internal/atlas"
	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/compositor"
)

// Source provides the user image for one device. Batch runs may serve
// every device the same image or capture one per screen size.
type Source func(dev *catalog.Device) (image.Image, error)

// Config holds all shared resources for a batch run.
type Config struct {
	Assets    *assets.Cache
	Source    Source
	OutputDir string
	Format    string // "webp" or "png"
	Workers   int
}

// Result holds the outcome of processing one device.
type Result struct {
	DeviceID string
	Name     string
	Image    string // output file, relative to OutputDir
	Success  bool
	Error    string
}

// Run processes all devices using a worker pool.
func Run(cfg Config, devices []*catalog.Device) []Result {
	total := len(devices)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f devices/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	devChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range devChan {
				results[idx] = processDevice(cfg, devices[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range devices {
		devChan <- i
	}
	close(devChan)

	wg.Wait()
	close(done)

	return results
}

func processDevice(cfg Config, dev *catalog.Device) Result {
	res := Result{DeviceID: dev.ID, Name: dev.Name}

	user, err := cfg.Source(dev)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	a, err := cfg.Assets.Load(dev)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var out *image.NRGBA
	switch {
	case a != nil:
		b := a.Background.Bounds()
		out = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		compositor.Render(out, a, user, dev.ChromeOffset)
	case dev.Has3D():
		// 3D-only device: the screen texture atlas is the render.
		out, err = atlas.Paint(user, dev, nil)
		if err != nil {
			res.Error = err.Error()
			return res
		}
	default:
		res.Error = fmt.Sprintf("no assets for %s", dev.ID)
		return res
	}

	ext := "webp"
	if cfg.Format == "png" {
		ext = "png"
	}
	res.Image = fmt.Sprintf("%s.%s", dev.ID, ext)

	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if ext == "png" {
		err = png.Encode(f, out)
	} else {
		err = nativewebp.Encode(f, out, nil)
	}
	if err != nil {
		res.Error = fmt.Sprintf("encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
