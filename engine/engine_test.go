package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/nathoo/lootcore/engine/catalog"
	"github.com/nathoo/lootcore/engine/codec"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/state"
	"github.com/nathoo/lootcore/types"
)

func testDefs() *state.Defs {
	d := state.NewDefs()
	d.Catalog.Define(types.ItemDef{ID: "gem", Name: "Gem"})
	d.AddTable(loot.NewTable("reward",
		loot.NewMessage("Good luck!", 100),
		loot.NewItemRange("gem", 1, 3, 50),
	))
	d.AddTable(loot.NewTable("broken",
		loot.NewItem("missing", 100),
	))
	return d
}

func TestEngine_RewardScenario(t *testing.T) {
	eng := New(testDefs(), 2024)

	const rolls = 1000
	bundles, err := eng.RollN("reward", rolls)
	if err != nil {
		t.Fatal(err)
	}
	if len(bundles) != rolls {
		t.Fatalf("expected %d bundles, got %d", rolls, len(bundles))
	}

	withItem := 0
	for i, b := range bundles {
		if len(b.Messages) != 1 || b.Messages[0] != "Good luck!" {
			t.Fatalf("roll %d: Messages = %v", i, b.Messages)
		}
		if len(b.Items) > 1 {
			t.Fatalf("roll %d: expected at most one item, got %d", i, len(b.Items))
		}
		if len(b.Items) == 1 {
			withItem++
			item := b.Items[0]
			if item.ID != "gem" || item.Quantity < 1 || item.Quantity > 3 {
				t.Fatalf("roll %d: item = %+v", i, item)
			}
		}
	}

	// Binomial(1000, 0.5) has sd ~15.8; allow four deviations.
	if withItem < 437 || withItem > 563 {
		t.Errorf("item dropped %d/%d times, want ~500", withItem, rolls)
	}
}

func TestEngine_SameSeedSameBundles(t *testing.T) {
	a := New(testDefs(), 7)
	b := New(testDefs(), 7)

	for i := 0; i < 50; i++ {
		ba, err := a.Roll("reward")
		if err != nil {
			t.Fatal(err)
		}
		bb, err := b.Roll("reward")
		if err != nil {
			t.Fatal(err)
		}
		if len(ba.Items) != len(bb.Items) {
			t.Fatalf("roll %d: item counts differ: %d vs %d", i, len(ba.Items), len(bb.Items))
		}
		if len(ba.Items) == 1 && ba.Items[0].Quantity != bb.Items[0].Quantity {
			t.Fatalf("roll %d: quantities differ", i)
		}
	}
}

func TestEngine_UnknownTable(t *testing.T) {
	eng := New(testDefs(), 1)
	if _, err := eng.Roll("dragon"); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestEngine_MissingReference(t *testing.T) {
	eng := New(testDefs(), 1)

	_, err := eng.Roll("broken")
	var mre *loot.MissingReferenceError
	if !errors.As(err, &mre) {
		t.Fatalf("expected MissingReferenceError, got %v", err)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected catalog.ErrNotFound in chain, got %v", err)
	}

	bundles, err := eng.RollN("broken", 3)
	if err == nil || len(bundles) != 0 {
		t.Errorf("RollN should stop at the first failure, got %d bundles, err %v", len(bundles), err)
	}
}

func TestEngine_RestoreRNG(t *testing.T) {
	eng := New(testDefs(), 99)
	for i := 0; i < 5; i++ {
		if _, err := eng.Roll("reward"); err != nil {
			t.Fatal(err)
		}
	}
	pos := eng.RNG.Position()

	next, err := eng.Roll("reward")
	if err != nil {
		t.Fatal(err)
	}

	eng.RestoreRNG(99, pos)
	replay, err := eng.Roll("reward")
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Items) != len(replay.Items) {
		t.Fatalf("restored roll differs: %d vs %d items", len(next.Items), len(replay.Items))
	}
	if len(next.Items) == 1 && next.Items[0].Quantity != replay.Items[0].Quantity {
		t.Errorf("restored quantity %d, want %d", replay.Items[0].Quantity, next.Items[0].Quantity)
	}
}

func TestEngine_RollN_HugeCount(t *testing.T) {
	eng := New(testDefs(), 1)

	// The broken table fails on the first roll, so a huge count must not
	// reserve memory for every requested bundle.
	bundles, err := eng.RollN("broken", math.MaxInt)
	if err == nil {
		t.Fatal("expected roll error")
	}
	if len(bundles) != 0 {
		t.Errorf("expected no bundles, got %d", len(bundles))
	}

	bundles, err = eng.RollN("reward", 0)
	if err != nil || len(bundles) != 0 {
		t.Errorf("RollN(0) = %d bundles, %v", len(bundles), err)
	}
}

func TestEngine_RollFullIntAmountRange(t *testing.T) {
	e, err := codec.Decode(loot.KindItem, map[string]any{
		"Probability": 100.0,
		"ItemID":      "gem",
		"AmountLower": 0,
		"AmountUpper": math.MaxInt,
	})
	if err != nil {
		t.Fatal(err)
	}
	d := testDefs()
	d.AddTable(loot.NewTable("hoard", e))
	eng := New(d, 3)

	for i := 0; i < 50; i++ {
		b, err := eng.Roll("hoard")
		if err != nil {
			t.Fatal(err)
		}
		if len(b.Items) != 1 || b.Items[0].Quantity < 0 {
			t.Fatalf("roll %d: items = %+v", i, b.Items)
		}
	}
}
