// Package catalog is an in-memory item provider keyed by item ID.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/nathoo/lootcore/types"
)

// ErrNotFound is returned when an item ID is not defined.
var ErrNotFound = errors.New("item not found")

// Catalog resolves item IDs into fresh item instances.
type Catalog struct {
	defs map[string]types.ItemDef
}

// New creates a catalog holding the given definitions.
func New(defs ...types.ItemDef) *Catalog {
	c := &Catalog{defs: map[string]types.ItemDef{}}
	for _, d := range defs {
		c.Define(d)
	}
	return c
}

// Define adds or replaces an item definition.
func (c *Catalog) Define(def types.ItemDef) {
	c.defs[def.ID] = def
}

// Has reports whether id is defined.
func (c *Catalog) Has(id string) bool {
	_, ok := c.defs[id]
	return ok
}

// Def returns the definition for id.
func (c *Catalog) Def(id string) (types.ItemDef, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// IDs returns all defined item IDs in sorted order.
func (c *Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c.defs))
}

// Resolve returns a new instance of the item with quantity 1 and its own
// instance ID. Props are copied so instances never share state.
func (c *Catalog) Resolve(id string) (types.Item, error) {
	def, ok := c.defs[id]
	if !ok {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	name := def.Name
	if name == "" {
		name = id
	}
	return types.Item{
		ID:         id,
		InstanceID: uuid.NewString(),
		Name:       name,
		Quantity:   1,
		Props:      maps.Clone(def.Props),
	}, nil
}
