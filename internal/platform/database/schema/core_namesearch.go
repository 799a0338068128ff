package schema

// CoreNameSearchTable represents the 'core.namesearch' table.
// One row per name, refreshed after every publish batch.
type CoreNameSearchTable struct {
	Table      string
	NameID     string
	SearchBlob string
	Variants   string
	Meanings   string
	UpdatedAt  string
}

// CoreNameSearch is the schema definition for core.namesearch
var CoreNameSearch = CoreNameSearchTable{
	Table:      "core.namesearch",
	NameID:     "nameid",
	SearchBlob: "searchblob",
	Variants:   "variants",
	Meanings:   "meanings",
	UpdatedAt:  "updatedat",
}

func (t CoreNameSearchTable) Columns() []string {
	return []string{t.NameID, t.SearchBlob, t.Variants, t.Meanings, t.UpdatedAt}
}
