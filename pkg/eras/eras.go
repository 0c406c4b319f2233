// Package eras maps named geological/historical eras to globe surface
// textures and loads them asynchronously.
package eras

import (
	"errors"
	"fmt"
)

// The closed set of era keys.
const (
	Modern      = "modern"
	Ancient     = "ancient"
	Prehistoric = "prehistoric"
	Dinosaurs   = "dinosaurs"
	Formation   = "formation"
)

// DefaultEra is the era shown at startup.
const DefaultEra = Modern

// ErrUnknownEra is returned when a key is not in the era catalog.
var ErrUnknownEra = errors.New("unknown era")

// Info describes one catalog entry.
type Info struct {
	Key     string
	Label   string
	Period  string
	Locator string
}

// order fixes the presentation order, newest first.
var order = []string{Modern, Ancient, Prehistoric, Dinosaurs, Formation}

// Catalog resolves era keys to texture locators. Locators accept three
// schemes: "res:<era>" for the built-in procedural textures, plain file
// paths, and http(s) URLs.
type Catalog struct {
	entries map[string]Info
}

// NewCatalog returns the default catalog, every era bound to its
// built-in texture.
func NewCatalog() *Catalog {
	c := &Catalog{entries: map[string]Info{
		Modern:      {Key: Modern, Label: "Modern Earth", Period: "present day"},
		Ancient:     {Key: Ancient, Label: "Ancient Earth", Period: "~500 BCE"},
		Prehistoric: {Key: Prehistoric, Label: "Prehistoric Earth", Period: "~250 Ma, Pangaea"},
		Dinosaurs:   {Key: Dinosaurs, Label: "Age of Dinosaurs", Period: "~150 Ma"},
		Formation:   {Key: Formation, Label: "Formation", Period: "~4.5 Ga, Hadean"},
	}}
	for key, e := range c.entries {
		e.Locator = ResourcePrefix + key
		c.entries[key] = e
	}
	return c
}

// Resolve returns the texture locator for an era key, or ErrUnknownEra.
func (c *Catalog) Resolve(key string) (string, error) {
	e, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEra, key)
	}
	return e.Locator, nil
}

// Override rebinds an era to a custom locator. Unknown keys are
// rejected: the era set is closed.
func (c *Catalog) Override(key, locator string) error {
	e, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEra, key)
	}
	e.Locator = locator
	c.entries[key] = e
	return nil
}

// Entries returns the catalog in presentation order.
func (c *Catalog) Entries() []Info {
	out := make([]Info, 0, len(order))
	for _, key := range order {
		out = append(out, c.entries[key])
	}
	return out
}

// Label returns the display name for an era key, or the key itself when
// unknown.
func (c *Catalog) Label(key string) string {
	if e, ok := c.entries[key]; ok {
		return e.Label
	}
	return key
}

// Keys returns the era keys in presentation order.
func Keys() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
