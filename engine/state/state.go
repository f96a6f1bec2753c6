// Package state holds the loaded loot tables and item catalog.
package state

import (
	"github.com/nathoo/lootcore/engine/catalog"
	"github.com/nathoo/lootcore/engine/loot"
)

// Defs holds the loot tables and item definitions produced by a load.
// Table order follows load order.
type Defs struct {
	Tables  []*loot.Table
	Catalog *catalog.Catalog
}

// NewDefs creates empty definitions with an empty catalog.
func NewDefs() *Defs {
	return &Defs{Catalog: catalog.New()}
}

// Table returns the table with the given name, or nil.
func (d *Defs) Table(name string) *loot.Table {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddTable appends t, replacing any table with the same name in place.
func (d *Defs) AddTable(t *loot.Table) {
	for i, existing := range d.Tables {
		if existing.Name == t.Name {
			d.Tables[i] = t
			return
		}
	}
	d.Tables = append(d.Tables, t)
}

// Merge adds other's item definitions and tables to d. Items and tables in
// other replace those with the same ID or name.
func (d *Defs) Merge(other *Defs) {
	for _, id := range other.Catalog.IDs() {
		def, _ := other.Catalog.Def(id)
		d.Catalog.Define(def)
	}
	for _, t := range other.Tables {
		d.AddTable(t)
	}
}

// TableNames returns table names in load order.
func (d *Defs) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// MissingItems returns, per table, the item IDs referenced by entries but
// not defined in the catalog.
func (d *Defs) MissingItems() map[string][]string {
	missing := map[string][]string{}
	for _, t := range d.Tables {
		for _, e := range t.Entries {
			it, ok := e.(*loot.BoundedItem)
			if !ok || d.Catalog.Has(it.ItemID()) {
				continue
			}
			missing[t.Name] = append(missing[t.Name], it.ItemID())
		}
	}
	return missing
}
