package domain

// Category classifies an enriched search result
type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryScience       Category = "Science"
	CategoryBusiness      Category = "Business"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategorySports        Category = "Sports"
	CategoryPolitics      Category = "Politics"
	CategoryOther         Category = "Other"

	// CategoryUncategorized is assigned when enrichment is unavailable or
	// fails; it is never produced by a successful enrichment pass.
	CategoryUncategorized Category = "Uncategorized"
)

// SearchResult is a single web search hit. Summary, Category and Relevance
// are empty until the enrichment pipeline runs; once set they are immutable
// for the lifetime of the record they belong to.
type SearchResult struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Snippet   string   `json:"snippet"`
	Summary   string   `json:"summary,omitempty"`
	Category  Category `json:"category,omitempty"`
	Relevance int      `json:"relevance,omitempty"`
}

// SearchFilters are the options applied to an outbound search request and
// persisted alongside the history record that the search produced.
type SearchFilters struct {
	SafeSearch bool   `json:"safeSearch"`
	Language   string `json:"language"`
	Region     string `json:"region"`
}

// IsValidCategory checks whether c is one of the nine enrichment categories.
// CategoryUncategorized is deliberately excluded: it marks degraded results.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryTechnology, CategoryScience, CategoryBusiness, CategoryHealth,
		CategoryEducation, CategoryEntertainment, CategorySports, CategoryPolitics,
		CategoryOther:
		return true
	}
	return false
}
