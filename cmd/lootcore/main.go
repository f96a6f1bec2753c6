// LootCore rolls and edits weighted loot tables authored in Lua or YAML.
// Usage: lootcore [--version] [--plain] [--script <file>] [--trace] [--yaml <file>] [lua_files...]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/lootcore/cli"
	"github.com/nathoo/lootcore/config"
	"github.com/nathoo/lootcore/engine"
	"github.com/nathoo/lootcore/engine/save"
	"github.com/nathoo/lootcore/engine/state"
	"github.com/nathoo/lootcore/loader"
	"github.com/nathoo/lootcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: lootcore [--version] [--plain] [--script <file>] [--trace] [--yaml <file>] [lua_files...]\n"

func main() {
	plain := false
	trace := false
	var yamlFile string
	var scriptFile string
	var luaFiles []string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("lootcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--yaml":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				yamlFile = args[i+1]
			}
			i++
		default:
			luaFiles = append(luaFiles, args[i])
		}
	}

	if yamlFile == "" && len(luaFiles) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	defs, err := loadDefs(yamlFile, luaFiles, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tables: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(defs, cfg.Seed)
	eng.Logger = logger
	eng.LootingBonus = cfg.LootingBonus

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDefs reads tables from a YAML store, then merges any Lua scripts on
// top. Lua tables replace YAML tables with the same name.
func loadDefs(yamlFile string, luaFiles []string, logger *slog.Logger) (*state.Defs, error) {
	defs := state.NewDefs()
	if yamlFile != "" {
		data, err := os.ReadFile(yamlFile)
		if err != nil {
			return nil, err
		}
		if defs, err = save.Load(data, logger); err != nil {
			return nil, err
		}
	}
	if len(luaFiles) > 0 {
		scripted, err := loader.LoadFiles(logger, luaFiles...)
		if err != nil {
			return nil, err
		}
		defs.Merge(scripted)
	}
	return defs, nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
