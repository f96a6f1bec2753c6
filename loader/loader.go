package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nathoo/lootcore/engine/state"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during script execution.
type collector struct {
	items  []rawItem
	tables []rawTable
}

// LoadFiles runs the given Lua scripts in order in one sandboxed VM and
// compiles the tables and items they define. Script errors fail the load;
// malformed loot entries are logged and skipped.
func LoadFiles(logger *slog.Logger, paths ...string) (*state.Defs, error) {
	if len(paths) == 0 {
		return nil, errors.New("no loot scripts given")
	}
	return load(logger, func(L *lua.LState) error {
		for _, path := range paths {
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("executing %s: %w", filepath.Base(path), err)
			}
		}
		return nil
	})
}

// LoadString runs a single Lua chunk named name and compiles its definitions.
func LoadString(name, src string, logger *slog.Logger) (*state.Defs, error) {
	return load(logger, func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(src), name)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return fmt.Errorf("executing %s: %w", name, err)
		}
		return nil
	})
}

func load(logger *slog.Logger, run func(L *lua.LState) error) (*state.Defs, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := run(L); err != nil {
		return nil, err
	}

	defs := compile(coll, logger)

	if err := validate(defs, coll, logger); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Scripts must not reseed; rolling randomness belongs to the engine.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
