// Package save implements YAML serialization of loot tables and item
// definitions.
package save

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nathoo/lootcore/engine/codec"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/state"
	"github.com/nathoo/lootcore/types"
	"gopkg.in/yaml.v3"
)

// itemDoc is the YAML form of a catalog item.
type itemDoc struct {
	ID    string         `yaml:"id"`
	Name  string         `yaml:"name,omitempty"`
	Props map[string]any `yaml:"props,omitempty"`
}

// tableDoc is the YAML form of a loot table. Each loot node is a mapping
// with a single key, the variant tag, holding the entry's fields.
type tableDoc struct {
	Name string      `yaml:"name"`
	Loot []yaml.Node `yaml:"loot"`
}

type document struct {
	Items  []itemDoc  `yaml:"items,omitempty"`
	Tables []tableDoc `yaml:"tables"`
}

// Save serializes defs to YAML. Entry fields keep their canonical order so
// repeated saves are byte-identical.
func Save(defs *state.Defs) ([]byte, error) {
	var doc document
	for _, id := range defs.Catalog.IDs() {
		def, _ := defs.Catalog.Def(id)
		doc.Items = append(doc.Items, itemDoc{ID: id, Name: def.Name, Props: def.Props})
	}
	for _, t := range defs.Tables {
		td := tableDoc{Name: t.Name, Loot: []yaml.Node{}}
		for _, e := range t.Entries {
			node, err := entryNode(e)
			if err != nil {
				return nil, fmt.Errorf("table %s entry %s: %w", t.Name, e, err)
			}
			td.Loot = append(td.Loot, *node)
		}
		doc.Tables = append(doc.Tables, td)
	}
	return yaml.Marshal(&doc)
}

func entryNode(e loot.Entry) (*yaml.Node, error) {
	fields := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range codec.Encode(e) {
		val, err := scalarNode(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		fields.Content = append(fields.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f.Key}, val)
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: e.Kind()}, fields},
	}, nil
}

// scalarNode renders a primitive field value. Strings are tagged so text
// that looks like a number stays a string.
func scalarNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(val)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: loot.FormatProbability(val)}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(val)}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// Load parses YAML produced by Save. Malformed YAML fails the load; a
// malformed entry is logged and skipped.
func Load(data []byte, logger *slog.Logger) (*state.Defs, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing loot tables: %w", err)
	}

	defs := state.NewDefs()
	for _, it := range doc.Items {
		defs.Catalog.Define(types.ItemDef{ID: it.ID, Name: it.Name, Props: it.Props})
	}

	lc := &codec.LoadContext{}
	for _, td := range doc.Tables {
		lc.BeginTable(td.Name)
		t := loot.NewTable(td.Name)
		for i := range td.Loot {
			kind, fields, err := entryFields(&td.Loot[i])
			if err != nil {
				logger.Error("failed to read loot entry",
					"table", td.Name, "line", td.Loot[i].Line, "error", err)
				continue
			}
			if e, ok := codec.Load(kind, fields, lc, logger); ok {
				t.Add(e)
			}
		}
		defs.AddTable(t)
		lc.EndTable()
	}
	return defs, nil
}

func entryFields(node *yaml.Node) (string, map[string]any, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, errors.New("entry must be a single-key mapping of kind to fields")
	}
	kind := node.Content[0].Value
	var fields map[string]any
	if err := node.Content[1].Decode(&fields); err != nil {
		return kind, nil, fmt.Errorf("%s fields: %w", kind, err)
	}
	return kind, fields, nil
}
