package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/lootcore/engine"
	"github.com/nathoo/lootcore/engine/bundle"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/parser"
	"github.com/nathoo/lootcore/engine/save"
	"github.com/nathoo/lootcore/types"
)

// Session executes loot commands against an engine. It is shared by the
// plain CLI and the TUI; each caller renders the returned lines itself.
type Session struct {
	Engine  *engine.Engine
	SaveDir string
	Trace   bool
	lastCmd string
}

// NewSession creates a session saving under ~/.lootcore/tables.
func NewSession(eng *engine.Engine) *Session {
	home, _ := os.UserHomeDir()
	return &Session{
		Engine:  eng,
		SaveDir: filepath.Join(home, ".lootcore", "tables"),
	}
}

// Exec runs one input line and returns its output lines. quit is true when
// the session should end.
func (s *Session) Exec(input string) (lines []string, quit bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}

	// Meta-commands start with '/'.
	if strings.HasPrefix(input, "/") {
		return s.handleMeta(input)
	}

	// "again" / "g" repeats the last loot command.
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if s.lastCmd == "" {
			return []string{"Nothing to repeat."}, false
		}
		input = s.lastCmd
	} else {
		s.lastCmd = input
	}

	return s.handleCommand(parser.Parse(input)), false
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (s *Session) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return system("Goodbye."), true

	case "/save":
		return s.cmdSave(arg), false

	case "/load":
		return s.cmdLoad(arg), false

	case "/help":
		return helpLines(), false

	case "/seed":
		return system(fmt.Sprintf("Seed %d, position %d.", s.Engine.RNG.Seed(), s.Engine.RNG.Position())), false

	case "/trace":
		s.Trace = !s.Trace
		if s.Trace {
			return system("Trace output enabled."), false
		}
		return system("Trace output disabled."), false

	default:
		return system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)), false
	}
}

func (s *Session) handleCommand(cmd parser.Command) []string {
	switch cmd.Verb {
	case "tables":
		return s.cmdTables()
	case "show":
		return s.withTable(cmd, s.cmdShow)
	case "info":
		return s.withEntry(cmd, func(_ *loot.Table, _ int, e loot.Entry, _ []string) []string {
			return InfoLines(e.Info())
		})
	case "roll":
		return s.withTable(cmd, s.cmdRoll)
	case "amount":
		return s.withEntry(cmd, cmdAmount)
	case "reset":
		return s.withEntry(cmd, func(_ *loot.Table, _ int, e loot.Entry, _ []string) []string {
			return refreshed(e, e.ResetAmount())
		})
	case "toggle":
		return s.withEntry(cmd, cmdToggle)
	case "add":
		return s.withTable(cmd, cmdAdd)
	case "remove":
		return s.withEntry(cmd, func(t *loot.Table, i int, e loot.Entry, _ []string) []string {
			t.Remove(i)
			return []string{fmt.Sprintf("Removed %s.", e)}
		})
	default:
		return []string{fmt.Sprintf("I don't know how to %q. Type /help for commands.", cmd.Verb)}
	}
}

// withTable resolves the command's table and passes its arguments on.
func (s *Session) withTable(cmd parser.Command, fn func(t *loot.Table, args []string) []string) []string {
	if cmd.Table == "" {
		return []string{fmt.Sprintf("%s which table?", capitalize(cmd.Verb))}
	}
	t := s.Engine.Defs.Table(cmd.Table)
	if t == nil {
		return []string{fmt.Sprintf("There is no loot table %q.", cmd.Table)}
	}
	return fn(t, cmd.Args)
}

// withEntry resolves the command's table and its first argument as a
// 1-based entry number.
func (s *Session) withEntry(cmd parser.Command, fn func(t *loot.Table, i int, e loot.Entry, args []string) []string) []string {
	return s.withTable(cmd, func(t *loot.Table, args []string) []string {
		if len(args) < 1 {
			return []string{fmt.Sprintf("%s which entry of %s?", capitalize(cmd.Verb), t.Name)}
		}
		n, err := strconv.Atoi(args[0])
		e := t.Entry(n - 1)
		if err != nil || e == nil {
			return []string{fmt.Sprintf("Table %s has no entry %s.", t.Name, args[0])}
		}
		return fn(t, n-1, e, args[1:])
	})
}

func (s *Session) cmdTables() []string {
	if len(s.Engine.Defs.Tables) == 0 {
		return []string{"No loot tables loaded."}
	}
	var lines []string
	for _, t := range s.Engine.Defs.Tables {
		lines = append(lines, fmt.Sprintf("%s (%d entries)", t.Name, len(t.Entries)))
	}
	return lines
}

func (s *Session) cmdShow(t *loot.Table, _ []string) []string {
	return append([]string{t.Name + ":"}, t.Lines()...)
}

// maxRolls bounds a single roll command.
const maxRolls = 100000

// cmdRoll rolls a table once, or n times with a tally of what dropped.
func (s *Session) cmdRoll(t *loot.Table, rest []string) []string {
	n := 1
	if len(rest) > 0 {
		v, err := strconv.Atoi(rest[0])
		if err != nil || v < 1 {
			return []string{fmt.Sprintf("Roll count must be a positive number, not %q.", rest[0])}
		}
		if v > maxRolls {
			return []string{fmt.Sprintf("Roll count must be at most %d.", maxRolls)}
		}
		n = v
	}

	bundles, err := s.Engine.RollN(t.Name, n)
	if err != nil {
		return []string{fmt.Sprintf("Roll failed: %v", err)}
	}

	var lines []string
	if n == 1 {
		lines = bundles[0].Lines()
	} else {
		lines = tally(bundles)
	}
	if s.Trace {
		lines = append(lines, fmt.Sprintf("[trace] rng position %d", s.Engine.RNG.Position()))
	}
	return lines
}

// tally summarizes many bundles: how often each message dropped and how
// many of each item dropped in total.
func tally(bundles []*bundle.Bundle) []string {
	messages := map[string]int{}
	items := map[string]int{}
	drops := map[string]int{}
	for _, b := range bundles {
		for _, m := range b.Messages {
			messages[m]++
		}
		for _, it := range b.Items {
			items[it.ID] += it.Quantity
			drops[it.ID]++
		}
	}

	lines := []string{fmt.Sprintf("Rolled %d times:", len(bundles))}
	for _, m := range sortedKeys(messages) {
		lines = append(lines, fmt.Sprintf("  %q x%d", m, messages[m]))
	}
	for _, id := range sortedKeys(items) {
		lines = append(lines, fmt.Sprintf("  %s: %d total in %d drops", id, items[id], drops[id]))
	}
	if len(messages) == 0 && len(items) == 0 {
		lines = append(lines, "  Nothing dropped.")
	}
	return lines
}

func cmdAmount(_ *loot.Table, _ int, e loot.Entry, rest []string) []string {
	if len(rest) < 1 {
		return []string{"Amount needs a delta, e.g. amount zombie 2 +1 both."}
	}
	delta, err := strconv.Atoi(rest[0])
	if err != nil {
		return []string{fmt.Sprintf("Delta must be a number, not %q.", rest[0])}
	}
	both := len(rest) > 1 && strings.EqualFold(rest[1], "both")
	return refreshed(e, e.ModifyAmount(delta, both))
}

var clickKinds = map[string]types.ClickKind{
	"left":        types.ClickLeft,
	"right":       types.ClickRight,
	"middle":      types.ClickMiddle,
	"shift_left":  types.ClickShiftLeft,
	"shift_right": types.ClickShiftRight,
	"double":      types.ClickDouble,
}

func cmdToggle(_ *loot.Table, _ int, e loot.Entry, rest []string) []string {
	click := types.ClickLeft
	if len(rest) > 0 {
		k, ok := clickKinds[strings.ToLower(rest[0])]
		if !ok {
			return []string{fmt.Sprintf("Unknown click %q.", rest[0])}
		}
		click = k
	}
	return refreshed(e, e.OnToggle(click))
}

// cmdAdd handles "add <table> message <prob> <text...>" and
// "add <table> item <prob> <id> [lower [upper]]".
func cmdAdd(t *loot.Table, rest []string) []string {
	usage := []string{
		"Usage: add <table> message <probability> <text>",
		"       add <table> item <probability> <item id> [lower [upper]]",
	}
	if len(rest) < 3 {
		return usage
	}
	p, err := strconv.ParseFloat(rest[1], 64)
	if err != nil {
		return []string{fmt.Sprintf("Probability must be a number, not %q.", rest[1])}
	}

	var e loot.Entry
	switch strings.ToLower(rest[0]) {
	case "message", "msg":
		e = loot.NewMessage(strings.Join(rest[2:], " "), p)
	case "item":
		nums := make([]int, 0, 2)
		for _, a := range rest[3:] {
			n, err := strconv.Atoi(a)
			if err != nil {
				return []string{fmt.Sprintf("Amount must be a number, not %q.", a)}
			}
			nums = append(nums, n)
		}
		switch len(nums) {
		case 0:
			e = loot.NewItem(rest[2], p)
		case 1:
			e = loot.NewItemRange(rest[2], nums[0], nums[0], p)
		default:
			e = loot.NewItemRange(rest[2], nums[0], nums[1], p)
		}
	default:
		return usage
	}

	if i := t.Find(e); i >= 0 {
		return []string{fmt.Sprintf("%s already has %s as entry %d.", t.Name, t.Entries[i], i+1)}
	}
	t.Add(e)
	return []string{fmt.Sprintf("Added %s to %s.", e, t.Name)}
}

func refreshed(e loot.Entry, refresh bool) []string {
	if !refresh {
		return []string{"Nothing to change."}
	}
	return []string{"Now: " + e.String()}
}

func (s *Session) cmdSave(name string) []string {
	if name == "" {
		name = "tables"
	}

	data, err := save.Save(s.Engine.Defs)
	if err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}
	path := filepath.Join(s.SaveDir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}
	return system(fmt.Sprintf("Tables saved to %s.", name))
}

func (s *Session) cmdLoad(name string) []string {
	if name == "" {
		name = "tables"
	}

	path := filepath.Join(s.SaveDir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return system(fmt.Sprintf("Load failed: %v", err))
	}
	defs, err := save.Load(data, s.Engine.Logger)
	if err != nil {
		return system(fmt.Sprintf("Load failed: %v", err))
	}
	s.Engine.Defs = defs
	return system(fmt.Sprintf("Tables loaded from %s (%d tables).", name, len(defs.Tables)))
}

// InfoLines renders a display record as plain text lines.
func InfoLines(rec types.DisplayRecord) []string {
	lines := []string{fmt.Sprintf("[%s] %s", rec.Icon, rec.Title)}
	for _, l := range rec.Lines {
		lines = append(lines, "  "+l)
	}
	return lines
}

func helpLines() []string {
	return []string{
		"System:",
		"  /save [name]  — Save tables as YAML (default: tables)",
		"  /load [name]  — Load tables from YAML (default: tables)",
		"  /seed         — Show RNG seed and position",
		"  /trace        — Toggle debug trace output",
		"  /help         — Show this help",
		"  /quit         — Exit",
		"",
		"Loot commands:",
		"  tables (ls)                        — List loot tables",
		"  show <table>                       — List a table's entries",
		"  info <table> <n>                   — Show entry details",
		"  roll <table> [times]               — Roll a table",
		"  amount <table> <n> <delta> [both]  — Change an entry's amount",
		"  reset <table> <n>                  — Reset an entry's amount to 1",
		"  toggle <table> <n> [click]         — Toggle an entry setting",
		"  add <table> message <p> <text>     — Add a message entry",
		"  add <table> item <p> <id> [lo [hi]] — Add an item entry",
		"  remove <table> <n> (rm)            — Remove an entry",
		"  again (g)                          — Repeat your last command",
		"",
		"The table may also follow of/from/in, e.g. info 2 of zombie.",
	}
}

func system(text string) []string {
	return []string{"[" + text + "]"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
