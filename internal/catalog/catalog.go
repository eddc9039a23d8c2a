package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed devices.toml
var defaultCatalog []byte

// Catalog holds the device table in file order with an ID index.
type Catalog struct {
	devices []*Device
	byID    map[string]*Device
}

type catalogFile struct {
	Devices []*Device `toml:"devices"`
}

// Default returns the embedded device catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads a TOML catalog file. Devices in the file replace embedded
// devices with the same ID and are otherwise appended in file order.
func Load(path string) (*Catalog, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	extra, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	for _, d := range extra.devices {
		base.put(d)
	}
	return base, nil
}

func parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c := &Catalog{byID: make(map[string]*Device)}
	for _, d := range f.Devices {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog: device %q has no id", d.Name)
		}
		c.put(d)
	}
	return c, nil
}

func (c *Catalog) put(d *Device) {
	if _, exists := c.byID[d.ID]; exists {
		for i, old := range c.devices {
			if old.ID == d.ID {
				c.devices[i] = d
				break
			}
		}
	} else {
		c.devices = append(c.devices, d)
	}
	c.byID[d.ID] = d
}

// Get returns the device with the given ID, or nil.
func (c *Catalog) Get(id string) *Device {
	return c.byID[id]
}

// Devices returns all devices in catalog order.
func (c *Catalog) Devices() []*Device {
	return c.devices
}

// Len returns the number of devices.
func (c *Catalog) Len() int {
	return len(c.devices)
}
