// Package loader loads Lua loot scripts into Go structs at load time.
// The Lua VM is discarded after loading; no Lua runs while rolling.
package loader

import (
	"log/slog"
	"strings"

	"github.com/nathoo/lootcore/engine/codec"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/state"
	"github.com/nathoo/lootcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
	line  string
}

// rawTable holds a loot table before compilation.
type rawTable struct {
	name  string
	table *lua.LTable
	line  string
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		// Otherwise treat as map.
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToAnyMap converts the string-keyed fields of a Lua table to a
// map[string]any, skipping the given keys.
func tableToAnyMap(tbl *lua.LTable, skip ...string) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		for _, s := range skip {
			if string(ks) == s {
				return
			}
		}
		m[string(ks)] = toGoValue(v)
	})
	return m
}

// compile converts all collected Lua data into Defs. Loot entries go through
// the codec so a bad entry is logged and skipped without stopping the load.
func compile(coll *collector, logger *slog.Logger) *state.Defs {
	defs := state.NewDefs()

	for _, raw := range coll.items {
		defs.Catalog.Define(compileItem(raw))
	}

	lc := &codec.LoadContext{}
	for _, raw := range coll.tables {
		lc.BeginTable(raw.name)
		defs.AddTable(compileTable(raw, lc, logger))
		lc.EndTable()
	}
	return defs
}

func compileItem(raw rawItem) types.ItemDef {
	return types.ItemDef{
		ID:    raw.id,
		Name:  getString(raw.table, "name"),
		Props: tableToAnyMap(raw.table, "name"),
	}
}

// compileTable compiles the array part of a Table in source order.
func compileTable(raw rawTable, lc *codec.LoadContext, logger *slog.Logger) *loot.Table {
	t := loot.NewTable(raw.name)
	n := raw.table.Len()
	for i := 1; i <= n; i++ {
		entryTbl, ok := raw.table.RawGetInt(i).(*lua.LTable)
		kind := ""
		if ok {
			kind = getString(entryTbl, kindKey)
		}
		if kind == "" {
			logger.Error("loot entry is not built with a loot constructor",
				"table", raw.name, "index", i, "defined_at", strings.TrimSpace(raw.line),
				"constructors", strings.Join(codec.Kinds(), ", "))
			continue
		}
		if e, ok := codec.Load(kind, tableToAnyMap(entryTbl, kindKey), lc, logger); ok {
			t.Add(e)
		}
	}
	return t
}
