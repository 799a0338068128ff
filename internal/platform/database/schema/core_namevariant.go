package schema

// CoreNameVariantTable represents the 'core.namevariant' table
type CoreNameVariantTable struct {
	Table     string
	ID        string
	NameID    string
	LocaleID  string
	Value     string
	CreatedAt string
}

// CoreNameVariant is the schema definition for core.namevariant
var CoreNameVariant = CoreNameVariantTable{
	Table:     "core.namevariant",
	ID:        "id",
	NameID:    "nameid",
	LocaleID:  "localeid",
	Value:     "value",
	CreatedAt: "createdat",
}

func (t CoreNameVariantTable) Columns() []string {
	return []string{t.ID, t.NameID, t.LocaleID, t.Value, t.CreatedAt}
}
