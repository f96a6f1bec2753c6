package codec

import (
	"sort"

	"github.com/nathoo/lootcore/engine/loot"
)

// decodeFunc builds an entry from a field reader.
type decodeFunc func(r *fieldReader) (loot.Entry, error)

var registry = map[string]decodeFunc{
	loot.KindMessage: decodeMessage,
	loot.KindItem:    decodeItem,
}

// Kinds returns the registered variant tags in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Known reports whether kind is a registered variant tag.
func Known(kind string) bool {
	_, ok := registry[kind]
	return ok
}

func decodeMessage(r *fieldReader) (loot.Entry, error) {
	p, err := r.probability()
	if err != nil {
		return nil, err
	}
	text, err := r.str("Message")
	if err != nil {
		return nil, err
	}
	return loot.NewMessageText(text, p), nil
}

// decodeItem reads the combined Amount field when present, otherwise the
// split AmountLower/AmountUpper pair, otherwise the default range.
func decodeItem(r *fieldReader) (loot.Entry, error) {
	p, err := r.probability()
	if err != nil {
		return nil, err
	}
	id, err := r.str("ItemID")
	if err != nil {
		return nil, err
	}

	lower, upper := 1, 1
	switch {
	case r.has("Amount"):
		if lower, err = r.amount("Amount"); err != nil {
			return nil, err
		}
		upper = lower
	case r.has("AmountLower"):
		if lower, err = r.amount("AmountLower"); err != nil {
			return nil, err
		}
		if upper, err = r.amount("AmountUpper"); err != nil {
			return nil, err
		}
		if upper < lower {
			return nil, r.fail(errUpperBelowLower)
		}
	case r.has("AmountUpper"):
		r.field = "AmountLower"
		return nil, r.fail(errMissing)
	}
	return loot.NewItemRange(id, lower, upper, p), nil
}
