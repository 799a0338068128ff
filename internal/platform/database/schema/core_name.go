package schema

// CoreNameTable represents the 'core.name' table
type CoreNameTable struct {
	Table        string
	ID           string
	CanonicalKey string
	CreatedAt    string
	UpdatedAt    string
}

// CoreName is the schema definition for core.name
var CoreName = CoreNameTable{
	Table:        "core.name",
	ID:           "id",
	CanonicalKey: "canonicalkey",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CoreNameTable) Columns() []string {
	return []string{t.ID, t.CanonicalKey, t.CreatedAt, t.UpdatedAt}
}
