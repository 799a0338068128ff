package schema

// RefLocaleTable represents the 'core.locale' table
type RefLocaleTable struct {
	Table      string
	ID         string
	Code       string
	Name       string
	NativeName string
}

// RefLocale is the schema definition for core.locale
var RefLocale = RefLocaleTable{
	Table:      "core.locale",
	ID:         "id",
	Code:       "code",
	Name:       "name",
	NativeName: "nativename",
}

func (t RefLocaleTable) Columns() []string { return []string{t.ID, t.Code, t.Name, t.NativeName} }
