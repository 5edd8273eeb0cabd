// Package material maps material keys to display colors and names.
//
// Lookup is explicit and tagged: Lookup reports whether the key was known,
// and Resolve falls back to the catalog default on a miss and logs a soft
// warning. An unknown key is never an error.
package material

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultKey is the fallback material.
const DefaultKey = "oak"

// HardwareKey names the metal used for handles.
const HardwareKey = "hardware"

// edgeShade darkens a face color for frames and edges.
const edgeShade = 0.8

// Info describes one material. Values are immutable once in a Catalog.
type Info struct {
	Key   string         `json:"key"`
	Name  string         `json:"name"`
	Color colorful.Color `json:"-"`
}

// Hex returns the face color as "#rrggbb".
func (i Info) Hex() string {
	return i.Color.Clamped().Hex()
}

// Edge returns the darker tone used for door frames and exposed edges.
func (i Info) Edge() colorful.Color {
	return colorful.Color{
		R: i.Color.R * edgeShade,
		G: i.Color.G * edgeShade,
		B: i.Color.B * edgeShade,
	}
}

// EdgeHex returns Edge as "#rrggbb".
func (i Info) EdgeHex() string {
	return i.Edge().Clamped().Hex()
}

// fromRGB converts a packed 0xRRGGBB value.
func fromRGB(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

var woods = []Info{
	{Key: "oak", Name: "Oak", Color: fromRGB(0xC19A6B)},
	{Key: "pine", Name: "Pine", Color: fromRGB(0xE3C16F)},
	{Key: "maple", Name: "Maple", Color: fromRGB(0xF0E68C)},
	{Key: "walnut", Name: "Walnut", Color: fromRGB(0x654321)},
	{Key: "cherry", Name: "Cherry", Color: fromRGB(0x9B4D4F)},
	{Key: "mahogany", Name: "Mahogany", Color: fromRGB(0x7B3F00)},
	{Key: "birch", Name: "Birch", Color: fromRGB(0xD6C7A5)},
	{Key: "white", Name: "White", Color: fromRGB(0xF5F5F5)},
}

// Hardware is the brushed metal used for handles.
var Hardware = Info{Key: HardwareKey, Name: "Hardware", Color: fromRGB(0x888888)}

// Catalog is a read-only material table.
type Catalog struct {
	entries  map[string]Info
	order    []string
	fallback string
	logger   *log.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a catalog holding the standard wood species.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries:  make(map[string]Info, len(woods)),
		fallback: DefaultKey,
		logger:   log.Default(),
	}
	for _, w := range woods {
		c.entries[w.Key] = w
		c.order = append(c.order, w.Key)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the material for key and whether it was found. Keys are
// matched case-insensitively.
func (c *Catalog) Lookup(key string) (Info, bool) {
	info, ok := c.entries[strings.ToLower(strings.TrimSpace(key))]
	return info, ok
}

// Resolve returns the material for key, or the default material when key is
// unknown.
func (c *Catalog) Resolve(key string) Info {
	if info, ok := c.Lookup(key); ok {
		return info
	}
	c.logger.Warn("unknown material, using default", "material", key, "default", c.fallback)
	return c.entries[c.fallback]
}

// Default returns the fallback material.
func (c *Catalog) Default() Info {
	return c.entries[c.fallback]
}

// Keys returns the catalog keys in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// SortedKeys returns the catalog keys alphabetically.
func (c *Catalog) SortedKeys() []string {
	keys := c.Keys()
	sort.Strings(keys)
	return keys
}
