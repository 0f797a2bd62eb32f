package domain

// Taxonomy holds the closed enumerations a resource must conform to, plus
// the substitution defaults used when classifier output falls outside them.
// It is passed explicitly into the components that need it so tests can
// inject alternate tables.
type Taxonomy struct {
	Categories    []string
	ResourceTypes []string
	Languages     []string

	DefaultResourceType string
	DefaultLanguage     string
}

// DefaultTaxonomy returns the canonical directory taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []string{
			"Planning",
			"Design",
			"Implementation",
			"Test & Deploy",
			"Operations",
			"Marketing",
			"Vibe Coding General",
			"Prompt Engineering General",
		},
		ResourceTypes: []string{
			"Tool",
			"Official Docs",
			"Article",
		},
		Languages: []string{
			"Korean",
			"English",
		},
		DefaultResourceType: "Article",
		DefaultLanguage:     "English",
	}
}

// HasCategory reports whether value is a canonical category label.
// Membership is a case-sensitive exact match; no fuzzy matching.
func (t Taxonomy) HasCategory(value string) bool {
	return contains(t.Categories, value)
}

// HasResourceType reports whether value is a canonical resource type label.
func (t Taxonomy) HasResourceType(value string) bool {
	return contains(t.ResourceTypes, value)
}

// HasLanguage reports whether value is a canonical language label.
func (t Taxonomy) HasLanguage(value string) bool {
	return contains(t.Languages, value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
