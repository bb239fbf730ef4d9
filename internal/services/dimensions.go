package services

// Dimension describes one independently browsable document attribute. Scalar
// dimensions live as a single column on the sermon record; non-scalar ones are
// arrays of tagged objects whose display value sits under ExtractKey.
type Dimension struct {
	ID         string `json:"id"`
	Attribute  string `json:"attribute"`
	Label      string `json:"label"`
	ExtractKey string `json:"extract_key,omitempty"`
	Scalar     bool   `json:"scalar"`
}

// dimensionRegistry is the static browse-dimension table. Initialized once;
// never mutated.
var dimensionRegistry = []Dimension{
	{ID: "themes", Attribute: "theme", Label: "Themes", ExtractKey: "name"},
	{ID: "doctrines", Attribute: "doctrine", Label: "Doctrines", ExtractKey: "name"},
	{ID: "keywords", Attribute: "keyword", Label: "Keywords", ExtractKey: "text"},
	{ID: "sermon-types", Attribute: "sermon_type", Label: "Sermon Types", Scalar: true},
	{ID: "categories", Attribute: "category", Label: "Theological Categories", Scalar: true},
}

// dimensionByID indexes the registry for lookup.
var dimensionByID = func() map[string]Dimension {
	m := make(map[string]Dimension, len(dimensionRegistry))
	for _, d := range dimensionRegistry {
		m[d.ID] = d
	}
	return m
}()

// Dimensions returns the browse dimensions in registry order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensionRegistry))
	copy(out, dimensionRegistry)
	return out
}

// LookupDimension returns the dimension for an identifier.
func LookupDimension(id string) (Dimension, bool) {
	d, ok := dimensionByID[id]
	return d, ok
}
