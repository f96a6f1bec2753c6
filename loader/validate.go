package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/lootcore/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks names for uniqueness and item references for existence.
// Missing items are warnings: the table loads, but rolling the entry fails.
func validate(defs *state.Defs, coll *collector, logger *slog.Logger) error {
	ve := &ValidationError{}

	// Table names present and unique.
	seen := map[string]bool{}
	for _, raw := range coll.tables {
		if raw.name == "" {
			ve.Errors = append(ve.Errors, "table name must not be empty")
			continue
		}
		if seen[raw.name] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate table %q", raw.name))
		}
		seen[raw.name] = true
	}

	// Item IDs present and unique.
	items := map[string]bool{}
	for _, raw := range coll.items {
		if raw.id == "" {
			ve.Errors = append(ve.Errors, "item id must not be empty")
			continue
		}
		if items[raw.id] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item %q", raw.id))
		}
		items[raw.id] = true
	}

	// Warnings: references to items the catalog does not define.
	missing := defs.MissingItems()
	for _, name := range defs.TableNames() {
		for _, id := range missing[name] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"table %q references undefined item %q", name, id))
		}
	}

	for _, w := range ve.Warnings {
		logger.Warn(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
