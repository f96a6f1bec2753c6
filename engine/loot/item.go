package loot

import (
	"errors"
	"math"
	"strconv"

	"github.com/nathoo/lootcore/engine/bundle"
	"github.com/nathoo/lootcore/types"
)

// KindItem is the registry tag of BoundedItem entries.
const KindItem = "ExternalItem"

// BoundedItem drops a random amount of an item resolved from an external
// catalog. Invariant: 0 <= lower <= upper.
type BoundedItem struct {
	base
	itemID string
	lower  int
	upper  int
}

// ErrNoProvider is wrapped when an item entry is rolled without a provider.
var ErrNoProvider = errors.New("no item provider")

// NewItem creates a BoundedItem dropping exactly one itemID.
func NewItem(itemID string, probability float64) *BoundedItem {
	return NewItemRange(itemID, 1, 1, probability)
}

// NewItemRange creates a BoundedItem dropping between lower and upper
// itemID. Bounds are clamped to satisfy the range invariant.
func NewItemRange(itemID string, lower, upper int, probability float64) *BoundedItem {
	it := &BoundedItem{itemID: itemID}
	it.setAmount(lower, upper)
	it.SetProbability(probability)
	return it
}

func (it *BoundedItem) Kind() string { return KindItem }

// ItemID returns the catalog reference.
func (it *BoundedItem) ItemID() string { return it.itemID }

// Amount returns the inclusive amount range.
func (it *BoundedItem) Amount() (lower, upper int) {
	return it.lower, it.upper
}

func (it *BoundedItem) setAmount(lower, upper int) {
	it.lower = max(0, lower)
	it.upper = max(upper, it.lower)
}

// Roll resolves a fresh instance of the item and adds it with a random
// amount. The looting bonus does not affect the amount.
func (it *BoundedItem) Roll(env Env, b *bundle.Bundle, _ float64) error {
	amount := env.RNG.RollInt(it.lower, it.upper)
	if env.Items == nil {
		return &MissingReferenceError{ItemID: it.itemID, Err: ErrNoProvider}
	}
	item, err := env.Items.Resolve(it.itemID)
	if err != nil {
		return &MissingReferenceError{ItemID: it.itemID, Err: err}
	}
	item.Quantity = amount
	b.AddItem(item)
	return nil
}

// ModifyAmount shifts the upper bound by delta, and the lower bound too when
// both is set. The lower bound never drops below zero and the upper bound
// never drops below the lower.
func (it *BoundedItem) ModifyAmount(delta int, both bool) bool {
	lower := it.lower
	if both {
		lower = addSaturating(lower, delta)
	}
	it.setAmount(lower, addSaturating(it.upper, delta))
	return true
}

// addSaturating returns a+b clamped to the int range.
func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func (it *BoundedItem) ResetAmount() bool {
	it.lower, it.upper = 1, 1
	return true
}

func (it *BoundedItem) amountString() string {
	if it.lower == it.upper {
		return strconv.Itoa(it.lower)
	}
	return strconv.Itoa(it.lower) + "-" + strconv.Itoa(it.upper)
}

func (it *BoundedItem) String() string {
	return it.amountString() + " " + it.itemID + " @ " + FormatProbability(it.probability) + "%"
}

func (it *BoundedItem) Info() types.DisplayRecord {
	return types.DisplayRecord{
		Icon:  "enchanting_table",
		Title: "External Item",
		Lines: []string{
			"Item ID: " + it.itemID,
			"Probability: " + FormatProbability(it.probability),
			"Amount: " + it.amountString(),
		},
	}
}

// Serialize emits Amount only for a non-default single amount, and split
// bounds for a range.
func (it *BoundedItem) Serialize() types.Fields {
	fields := types.Fields{
		{Key: "Probability", Value: it.probability},
		{Key: "ItemID", Value: it.itemID},
	}
	switch {
	case it.lower != it.upper:
		fields = append(fields,
			types.Field{Key: "AmountLower", Value: it.lower},
			types.Field{Key: "AmountUpper", Value: it.upper})
	case it.lower != 1:
		fields = append(fields, types.Field{Key: "Amount", Value: it.lower})
	}
	return fields
}

func (it *BoundedItem) Equal(other Entry) bool {
	o, ok := other.(*BoundedItem)
	return ok && o.itemID == it.itemID && o.lower == it.lower && o.upper == it.upper
}

func (it *BoundedItem) Hash() uint64 {
	return hashKey(KindItem, it.itemID, strconv.Itoa(it.lower), strconv.Itoa(it.upper))
}
