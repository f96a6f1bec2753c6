package codec

// LoadContext records loading progress for diagnostics. It is threaded
// through a single load pass and never affects what gets loaded.
type LoadContext struct {
	Table     string // table currently being loaded
	LastTable string // last table that finished loading
	LastEntry string // description of the last entry that loaded
}

// BeginTable marks name as the table currently loading.
func (lc *LoadContext) BeginTable(name string) {
	lc.Table = name
}

// EndTable marks the current table as finished.
func (lc *LoadContext) EndTable() {
	lc.LastTable = lc.Table
	lc.Table = ""
}

func (lc *LoadContext) loaded(desc string) {
	lc.LastEntry = desc
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
