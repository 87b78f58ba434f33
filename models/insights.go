package models

// Count is a label with the number of apps carrying it.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryInstalls is the total install count of one category.
type CategoryInstalls struct {
	Category string `json:"category"`
	Installs int64  `json:"installs"`
}

// CategoryStats merges app count and total installs per category.
type CategoryStats struct {
	Category string `json:"category"`
	Apps     int    `json:"apps"`
	Installs int64  `json:"installs"`
}

// CategoryTypeCount is the number of apps of one type (Free/Paid) in a category.
type CategoryTypeCount struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Apps     int    `json:"apps"`
}

// BoxSummary describes the installs distribution of one app type.
type BoxSummary struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Min        float64 `json:"min"`
	Q1         float64 `json:"q1"`
	Median     float64 `json:"median"`
	Q3         float64 `json:"q3"`
	Max        float64 `json:"max"`
	LowerFence float64 `json:"lowerfence"`
	UpperFence float64 `json:"upperfence"`
	NotchLow   float64 `json:"notch_low"`
	NotchHigh  float64 `json:"notch_high"`
}

// InsightReport holds every aggregate computed over the cleaned dataset.
type InsightReport struct {
	RawCount           int `json:"raw_count"`
	CleanCount         int `json:"clean_count"`
	MissingRatingCount int `json:"missing_rating_count"`
	DuplicateCount     int `json:"duplicate_count"`

	TopRated       []App `json:"top_rated"`
	Largest        []App `json:"largest"`
	MostReviewed   []App `json:"most_reviewed"`
	HighestRevenue []App `json:"highest_revenue"`

	ContentRatings []Count `json:"content_ratings"`
	TopCategories  []Count `json:"top_categories"`

	// CategoryInstalls is ordered by installs ascending, CategoryApps by name.
	CategoryInstalls []CategoryInstalls `json:"category_installs"`
	CategoryApps     []Count            `json:"category_apps"`
	CategoryMerged   []CategoryStats    `json:"category_merged"`

	Genres         []Count             `json:"genres"`
	FreeVsPaid     []CategoryTypeCount `json:"free_vs_paid"`
	InstallsByType []BoxSummary        `json:"installs_by_type"`
}

// Summary is a describe()-style table: one row per statistic, one column per field.
type Summary struct {
	Stats   []string        `json:"stats"`
	Columns []SummaryColumn `json:"columns"`
}

// SummaryColumn holds the statistics of one numeric field, aligned with Summary.Stats.
type SummaryColumn struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}
