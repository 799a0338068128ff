package schema

// CoreNameMeaningTable represents the 'core.namemeaning' table
type CoreNameMeaningTable struct {
	Table     string
	ID        string
	NameID    string
	LocaleID  string
	Value     string
	CreatedAt string
}

// CoreNameMeaning is the schema definition for core.namemeaning
var CoreNameMeaning = CoreNameMeaningTable{
	Table:     "core.namemeaning",
	ID:        "id",
	NameID:    "nameid",
	LocaleID:  "localeid",
	Value:     "value",
	CreatedAt: "createdat",
}

func (t CoreNameMeaningTable) Columns() []string {
	return []string{t.ID, t.NameID, t.LocaleID, t.Value, t.CreatedAt}
}
