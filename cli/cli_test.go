package cli

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nathoo/lootcore/engine"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/state"
	"github.com/nathoo/lootcore/types"
)

// testDefs returns a small loot setup for CLI testing.
func testDefs() *state.Defs {
	defs := state.NewDefs()
	defs.Catalog.Define(types.ItemDef{ID: "gem", Name: "Shiny Gem"})
	defs.AddTable(loot.NewTable("zombie",
		loot.NewMessage("&aGroan!", 100),
		loot.NewItemRange("gem", 2, 2, 100),
	))
	defs.AddTable(loot.NewTable("chest",
		loot.NewItem("gem", 50),
	))
	return defs
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng := engine.New(testDefs(), 42)
	eng.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer
	c := &CLI{
		Session: &Session{Engine: eng, SaveDir: t.TempDir()},
		In:      strings.NewReader(input),
		Out:     &out,
	}
	return c, &out
}

func TestCLI_ListsTablesOnStart(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "zombie (2 entries)") {
		t.Errorf("expected zombie table listed, got:\n%s", got)
	}
	if !strings.Contains(got, "chest (1 entries)") {
		t.Errorf("expected chest table listed, got:\n%s", got)
	}
}

func TestCLI_Show(t *testing.T) {
	c, out := newTestCLI(t, "show zombie\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "1. Groan! @ 100%") {
		t.Errorf("expected message entry with color codes stripped, got:\n%s", got)
	}
	if !strings.Contains(got, "2. 2 gem @ 100%") {
		t.Errorf("expected item entry, got:\n%s", got)
	}
}

func TestCLI_Roll(t *testing.T) {
	c, out := newTestCLI(t, "roll zombie\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Groan!") {
		t.Errorf("expected message in bundle, got:\n%s", got)
	}
	if !strings.Contains(got, "2x Shiny Gem") {
		t.Errorf("expected 2 gems in bundle, got:\n%s", got)
	}
}

func TestCLI_RollMany(t *testing.T) {
	c, out := newTestCLI(t, "roll zombie 5\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Rolled 5 times:") {
		t.Errorf("expected tally header, got:\n%s", got)
	}
	if !strings.Contains(got, "gem: 10 total in 5 drops") {
		t.Errorf("expected gem tally, got:\n%s", got)
	}
}

func TestCLI_RollUnknownTable(t *testing.T) {
	c, out := newTestCLI(t, "roll dragon\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), `There is no loot table "dragon".`) {
		t.Errorf("expected unknown table message, got:\n%s", out.String())
	}
}

func TestCLI_RollMissingItem(t *testing.T) {
	c, out := newTestCLI(t, "add chest item 100 ruby\nroll chest\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Roll failed:") {
		t.Errorf("expected roll failure for missing item, got:\n%s", out.String())
	}
}

func TestCLI_Info(t *testing.T) {
	c, out := newTestCLI(t, "info zombie 2\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "[enchanting_table] External Item") {
		t.Errorf("expected item info header, got:\n%s", got)
	}
	if !strings.Contains(got, "gem") {
		t.Errorf("expected item id in info, got:\n%s", got)
	}
}

func TestCLI_InfoBadEntry(t *testing.T) {
	c, out := newTestCLI(t, "info zombie 9\ninfo zombie x\n/quit\n")
	c.Run()

	got := out.String()
	if strings.Count(got, "Table zombie has no entry") != 2 {
		t.Errorf("expected two bad entry messages, got:\n%s", got)
	}
}

func TestCLI_AmountAndReset(t *testing.T) {
	c, out := newTestCLI(t, "amount chest 1 3 both\namount chest 1 2\nreset chest 1\n/quit\n")
	c.Run()

	got := out.String()
	for _, want := range []string{"Now: 4 gem @ 50%", "Now: 4-6 gem @ 50%", "Now: 1 gem @ 50%"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q, got:\n%s", want, got)
		}
	}
}

func TestCLI_AmountOnMessage(t *testing.T) {
	c, out := newTestCLI(t, "amount zombie 1 1\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to change.") {
		t.Errorf("expected no change for message entry, got:\n%s", out.String())
	}
}

func TestCLI_Toggle(t *testing.T) {
	c, out := newTestCLI(t, "toggle zombie 1 right\ntoggle zombie 1 sideways\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Nothing to change.") {
		t.Errorf("expected toggle to be a no-op, got:\n%s", got)
	}
	if !strings.Contains(got, `Unknown click "sideways".`) {
		t.Errorf("expected unknown click message, got:\n%s", got)
	}
}

func TestCLI_AddAndRemove(t *testing.T) {
	c, out := newTestCLI(t, "add chest message 25 &bHello there\nadd chest item 10 gem 1 3\nremove chest 1\nshow chest\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Added Hello there @ 25% to chest.") {
		t.Errorf("expected message added, got:\n%s", got)
	}
	if !strings.Contains(got, "Added 1-3 gem @ 10% to chest.") {
		t.Errorf("expected item added, got:\n%s", got)
	}
	if !strings.Contains(got, "Removed 1 gem @ 50%.") {
		t.Errorf("expected first entry removed, got:\n%s", got)
	}

	tbl := c.Engine.Defs.Table("chest")
	if len(tbl.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tbl.Entries))
	}
	if msg, ok := tbl.Entries[0].(*loot.Message); !ok || msg.Text() != "§bHello there" {
		t.Errorf("expected translated message first, got %v", tbl.Entries[0])
	}
}

func TestCLI_AddDuplicate(t *testing.T) {
	c, out := newTestCLI(t, "add chest item 90 gem\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "chest already has 1 gem @ 50% as entry 1.") {
		t.Errorf("expected duplicate rejection, got:\n%s", out.String())
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "/save") {
		t.Error("help should mention /save")
	}
	if !strings.Contains(got, "roll <table>") {
		t.Error("help should mention roll")
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	// First session: edit a table and save.
	c1, out1 := newTestCLI(t, "amount chest 1 4\n/save test1\n/quit\n")
	c1.SaveDir = dir
	c1.Run()

	if !strings.Contains(out1.String(), "Tables saved to test1.") {
		t.Fatalf("expected save confirmation, got:\n%s", out1.String())
	}

	// Second session: load the save and inspect.
	c2, out2 := newTestCLI(t, "/load test1\nshow chest\n/quit\n")
	c2.SaveDir = dir
	c2.Run()

	got := out2.String()
	if !strings.Contains(got, "Tables loaded from test1 (2 tables).") {
		t.Errorf("expected load confirmation, got:\n%s", got)
	}
	if !strings.Contains(got, "1. 1-5 gem @ 50%") {
		t.Errorf("expected edited entry after load, got:\n%s", got)
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load doesnotexist\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Errorf("expected load failure message, got:\n%s", out.String())
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/foo\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /foo") {
		t.Errorf("expected unknown command message, got:\n%s", out.String())
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	c, out := newTestCLI(t, "dance\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), `I don't know how to "dance".`) {
		t.Errorf("expected unknown verb message, got:\n%s", out.String())
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nroll zombie\n/trace\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Trace output enabled.") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(got, "[trace] rng position") {
		t.Errorf("expected trace line after roll, got:\n%s", got)
	}
	if !strings.Contains(got, "Trace output disabled.") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_Seed(t *testing.T) {
	c, out := newTestCLI(t, "/seed\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "[Seed 42, position 0.]") {
		t.Errorf("expected seed output, got:\n%s", out.String())
	}
}

func TestCLI_EmptyInputAndComments(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n  \n/quit\n")
	c.Run()

	if strings.Count(out.String(), "> ") < 3 {
		t.Errorf("expected multiple prompts, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "a comment") {
		t.Errorf("comment lines should not be echoed or run, got:\n%s", out.String())
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "amount chest 1 1\nagain\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "Now: 1-2 gem @ 50%") || !strings.Contains(got, "Now: 1-3 gem @ 50%") {
		t.Errorf("expected again to repeat amount, got:\n%s", got)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "amount chest 1 1\ng\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Now: 1-3 gem @ 50%") {
		t.Errorf("expected g to repeat amount, got:\n%s", out.String())
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Errorf("expected 'Nothing to repeat.', got:\n%s", out.String())
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "tables\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> tables\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_NaturalPhrasing(t *testing.T) {
	c, out := newTestCLI(t, "roll on the zombie table 3 times\ninfo entry 2 of zombie\nrm 1 from chest\n/quit\n")
	c.Run()

	got := out.String()
	if !strings.Contains(got, "gem: 6 total in 3 drops") {
		t.Errorf("expected 3 rolls of zombie, got:\n%s", got)
	}
	if !strings.Contains(got, "[enchanting_table] External Item") {
		t.Errorf("expected info for zombie entry 2, got:\n%s", got)
	}
	if !strings.Contains(got, "Removed 1 gem @ 50%.") {
		t.Errorf("expected chest entry removed, got:\n%s", got)
	}
}

func TestCLI_RollCountLimits(t *testing.T) {
	c, out := newTestCLI(t, "roll zombie 9223372036854775807\nroll zombie 100001\nroll zombie 0\nroll zombie 99999999999999999999\n/quit\n")
	c.Run()

	got := out.String()
	if strings.Count(got, "Roll count must be at most 100000.") != 2 {
		t.Errorf("expected two oversized count rejections, got:\n%s", got)
	}
	if strings.Count(got, "Roll count must be a positive number") != 2 {
		t.Errorf("expected zero and unparsable counts rejected, got:\n%s", got)
	}
	if c.Engine.RNG.Position() != 0 {
		t.Errorf("rejected rolls should not draw, position = %d", c.Engine.RNG.Position())
	}
}
