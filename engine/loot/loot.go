// Package loot defines the loot entry capability, its variants, and loot tables.
package loot

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/nathoo/lootcore/engine/bundle"
	"github.com/nathoo/lootcore/types"
)

// Roller is the random source used while rolling.
type Roller interface {
	RollInt(lower, upper int) int
	CheckHit(probability float64) bool
}

// ItemProvider materializes fresh item instances from catalog references.
type ItemProvider interface {
	Resolve(id string) (types.Item, error)
}

// Env carries the collaborators an entry needs while rolling.
type Env struct {
	RNG   Roller
	Items ItemProvider
}

// Entry is a single line of a loot table.
type Entry interface {
	// Kind returns the registry tag of the variant.
	Kind() string
	Probability() float64
	SetProbability(p float64)

	// Roll adds this entry's contribution to b. The probability check has
	// already passed when Roll is called.
	Roll(env Env, b *bundle.Bundle, bonus float64) error

	// String returns the one-line operator description.
	String() string
	Info() types.DisplayRecord
	Serialize() types.Fields

	// Interactive edits. Each returns true if the caller must refresh.
	OnToggle(click types.ClickKind) bool
	OnToolClick(tool types.Tool, click types.ClickKind) bool
	ModifyAmount(delta int, both bool) bool
	ResetAmount() bool

	// Equal and Hash compare payloads only; probability is not part of
	// an entry's identity.
	Equal(other Entry) bool
	Hash() uint64
}

// MissingReferenceError is returned when the item provider cannot resolve
// an entry's item reference during a roll.
type MissingReferenceError struct {
	ItemID string
	Err    error
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("unresolved item reference %q: %v", e.ItemID, e.Err)
}

func (e *MissingReferenceError) Unwrap() error {
	return e.Err
}

// base holds the probability and the no-op interactive behavior shared by
// all variants.
type base struct {
	probability float64
}

func (b *base) Probability() float64 {
	return b.probability
}

func (b *base) SetProbability(p float64) {
	b.probability = ClampProbability(p)
}

func (b *base) OnToggle(types.ClickKind) bool {
	return false
}

func (b *base) OnToolClick(types.Tool, types.ClickKind) bool {
	return false
}

func (b *base) ModifyAmount(int, bool) bool {
	return false
}

func (b *base) ResetAmount() bool {
	return false
}

// ClampProbability limits p to [0, 100]. NaN becomes 0.
func ClampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// FormatProbability renders p without a decimal point when it is whole,
// otherwise with the shortest exact decimal.
func FormatProbability(p float64) string {
	if p == math.Floor(p) {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// hashKey hashes the kind tag and payload parts of an entry.
func hashKey(kind string, parts ...string) uint64 {
	d := xxhash.New()
	d.WriteString(kind)
	for _, p := range parts {
		d.WriteString("\x00")
		d.WriteString(p)
	}
	return d.Sum64()
}
