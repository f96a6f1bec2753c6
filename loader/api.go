package loader

import (
	"github.com/nathoo/lootcore/engine/codec"
	lua "github.com/yuin/gopher-lua"
)

// kindKey marks a Lua table built by a loot constructor.
const kindKey = "__kind"

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerLootConstructors(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Item "id" { name = "...", ... }, curried.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, table: tbl, line: L.Where(1)})
			return 0
		}))
		return 1
	}))

	// Table "name" { Message {...}, ExternalItem {...} }, curried.
	L.SetGlobal("Table", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.tables = append(coll.tables, rawTable{name: name, table: tbl, line: L.Where(1)})
			return 0
		}))
		return 1
	}))
}

// registerLootConstructors registers one constructor per loot kind, e.g.
// Message { Probability = 100, Message = "Hi" }. Each returns a copy of its
// argument tagged with the kind; fields are checked at compile time.
func registerLootConstructors(L *lua.LState) {
	for _, kind := range codec.Kinds() {
		L.SetGlobal(kind, L.NewFunction(func(L *lua.LState) int {
			src := L.CheckTable(1)
			tbl := L.NewTable()
			src.ForEach(func(k, v lua.LValue) {
				tbl.RawSet(k, v)
			})
			tbl.RawSetString(kindKey, lua.LString(kind))
			L.Push(tbl)
			return 1
		}))
	}
}
