// Package codec converts loot entries to and from generic string-keyed
// field maps, attributing decode failures to the field being read.
package codec

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nathoo/lootcore/engine/loot"
	"github.com/nathoo/lootcore/types"
)

// KindField is the pseudo-field reported when the variant tag is unknown.
const KindField = "=="

var (
	errMissing         = errors.New("missing")
	errUnknownKind     = errors.New("unknown loot kind")
	errOutOfRange      = errors.New("out of range")
	errUpperBelowLower = errors.New("AmountUpper is below AmountLower")
)

// FieldError reports the field that failed while decoding an entry.
type FieldError struct {
	Kind  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %s: %v", e.Kind, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decode builds an entry of the given kind from fields. Any failure is a
// *FieldError naming the field being read.
func Decode(kind string, fields map[string]any) (loot.Entry, error) {
	dec, ok := registry[kind]
	if !ok {
		return nil, &FieldError{Kind: kind, Field: KindField, Err: errUnknownKind}
	}
	return dec(&fieldReader{kind: kind, fields: fields})
}

// Load decodes one entry for the table recorded in lc. On failure it logs a
// diagnostic with the failing field and the last successful load, and
// returns false so the caller can continue with the next entry.
func Load(kind string, fields map[string]any, lc *LoadContext, logger *slog.Logger) (loot.Entry, bool) {
	entry, err := Decode(kind, fields)
	if err != nil {
		var fe *FieldError
		field := ""
		if errors.As(err, &fe) {
			field = fe.Field
		}
		logger.Error("failed to load loot entry",
			"kind", kind,
			"field", field,
			"table", orUnknown(lc.Table),
			"last_table", orUnknown(lc.LastTable),
			"last_entry", orUnknown(lc.LastEntry),
			"error", err,
		)
		return nil, false
	}
	lc.loaded(entry.String())
	return entry, true
}

// Encode returns the canonical serialized fields of e.
func Encode(e loot.Entry) types.Fields {
	return e.Serialize()
}

// fieldReader reads typed fields and remembers which one it was reading.
type fieldReader struct {
	kind   string
	fields map[string]any
	field  string
}

func (r *fieldReader) fail(err error) error {
	return &FieldError{Kind: r.kind, Field: r.field, Err: err}
}

func (r *fieldReader) has(name string) bool {
	r.field = name
	_, ok := r.fields[name]
	return ok
}

func (r *fieldReader) get(name string) (any, error) {
	r.field = name
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, r.fail(errMissing)
	}
	return v, nil
}

func (r *fieldReader) str(name string) (string, error) {
	v, err := r.get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", r.fail(fmt.Errorf("want string, got %T", v))
	}
	return s, nil
}

func (r *fieldReader) number(name string) (float64, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, r.fail(fmt.Errorf("want number, got %T", v))
}

func (r *fieldReader) integer(name string) (int, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), nil
		}
		return 0, r.fail(fmt.Errorf("want integer, got %v", n))
	}
	return 0, r.fail(fmt.Errorf("want integer, got %T", v))
}

func (r *fieldReader) probability() (float64, error) {
	p, err := r.number("Probability")
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, r.fail(fmt.Errorf("%w: %v", errOutOfRange, p))
	}
	return p, nil
}

func (r *fieldReader) amount(name string) (int, error) {
	n, err := r.integer(name)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, r.fail(fmt.Errorf("%w: %d", errOutOfRange, n))
	}
	return n, nil
}
