// Package engine provides the Engine that rolls loaded loot tables with a
// seeded random source.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/nathoo/lootcore/engine/bundle"
	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/engine/state"
)

// Engine holds the loot definitions and the random source used to roll them.
type Engine struct {
	Defs         *state.Defs
	RNG          *RNG
	Logger       *slog.Logger
	LootingBonus float64
}

// New creates an engine rolling defs with an RNG seeded from seed.
func New(defs *state.Defs, seed int64) *Engine {
	return &Engine{
		Defs:   defs,
		RNG:    NewRNG(seed),
		Logger: slog.Default(),
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed int64, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// Env returns the roll environment backed by the engine's RNG and catalog.
func (e *Engine) Env() loot.Env {
	return loot.Env{RNG: e.RNG, Items: e.Defs.Catalog}
}

// Roll rolls the named table once and returns the resulting bundle.
func (e *Engine) Roll(table string) (*bundle.Bundle, error) {
	t := e.Defs.Table(table)
	if t == nil {
		return nil, fmt.Errorf("unknown loot table %q", table)
	}
	b, err := t.Roll(e.Env(), e.LootingBonus)
	if err != nil {
		e.Logger.Warn("loot roll failed", "table", table, "error", err)
		return nil, err
	}
	e.Logger.Debug("loot rolled", "table", table,
		"messages", len(b.Messages), "items", len(b.Items), "rng_position", e.RNG.Position())
	return b, nil
}

// rollNPrealloc caps the bundle slice capacity reserved up front by RollN.
const rollNPrealloc = 1024

// RollN rolls the named table n times, one bundle per reward event. It
// stops at the first failed roll.
func (e *Engine) RollN(table string, n int) ([]*bundle.Bundle, error) {
	bundles := make([]*bundle.Bundle, 0, max(0, min(n, rollNPrealloc)))
	for i := 0; i < n; i++ {
		b, err := e.Roll(table)
		if err != nil {
			return bundles, fmt.Errorf("roll %d: %w", i+1, err)
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}
