package assets

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/singleflight"

	"device-mockup-renderer/internal/catalog"
	"device-mockup-renderer/internal/logging"
)

// DeviceAssets is a loaded background/mask pair plus the mask's screen
// bounds. A nil *DeviceAssets means the device has no usable 2D assets.
type DeviceAssets struct {
	Background *image.NRGBA
	Mask       *image.NRGBA
	Bounds     Bounds
}

// Cache memoizes device asset loads for the process lifetime. A load
// outcome — success or failure — is cached permanently; concurrent loads
// for the same device collapse to a single flight.
type Cache struct {
	root string // prepended to each device's AssetDir

	mu      sync.RWMutex
	entries map[string]*DeviceAssets // device ID → assets (nil cached too)
	flight  singleflight.Group
}

// NewCache creates an asset cache resolving device asset dirs under root.
func NewCache(root string) *Cache {
	return &Cache{
		root:    root,
		entries: make(map[string]*DeviceAssets),
	}
}

// Load returns the device's 2D assets, loading them on first call.
// Returns nil (with nil error) when the device declares no 2D support or
// when a previous load failed; load failures are logged, cached, and
// never retried.
func (c *Cache) Load(dev *catalog.Device) (*DeviceAssets, error) {
	c.mu.RLock()
	if a, ok := c.entries[dev.ID]; ok {
		c.mu.RUnlock()
		return a, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.flight.Do(dev.ID, func() (any, error) {
		a := c.load(dev)
		c.mu.Lock()
		c.entries[dev.ID] = a
		c.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DeviceAssets), nil
}

func (c *Cache) load(dev *catalog.Device) *DeviceAssets {
	if !dev.Has2D {
		return nil
	}

	dir := dev.AssetDir
	if c.root != "" {
		dir = fmt.Sprintf("%s/%s", c.root, dev.AssetDir)
	}

	bg, err := loadConventional(dir, dev.AssetPrefix+"_bg")
	if err != nil {
		logging.Logger().Warn("device background load failed",
			"device", dev.ID, "error", err)
		return nil
	}
	mask, err := loadConventional(dir, dev.AssetPrefix+"_screenmask")
	if err != nil {
		logging.Logger().Warn("device mask load failed",
			"device", dev.ID, "error", err)
		return nil
	}

	a := &DeviceAssets{
		Background: bg,
		Mask:       mask,
		Bounds:     ExtractBounds(mask),
	}
	logging.Logger().Debug("device assets loaded",
		"device", dev.ID, "bounds", a.Bounds)
	return a
}

func loadConventional(dir, stem string) (*image.NRGBA, error) {
	path, err := findAsset(dir, stem)
	if err != nil {
		return nil, err
	}
	return LoadImage(path)
}

// Reset clears every cached entry. Intended for explicit lifecycle resets
// only; nothing evicts during normal operation.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*DeviceAssets)
	c.mu.Unlock()
}
