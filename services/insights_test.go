package services

import (
	"slices"
	"testing"

	"playstore-dashboard/models"
)

func sampleApps() []models.App {
	return []models.App{
		{Name: "Instagram", Category: "SOCIAL", Rating: 4.5, Reviews: 66577313, SizeMBs: 5.3, Installs: 1000000000, Type: "Free", ContentRating: "Teen", Genres: "Social"},
		{Name: "Minecraft", Category: "FAMILY", Rating: 4.5, Reviews: 2376564, SizeMBs: 19, Installs: 10000000, Type: "Paid", Price: 6.99, ContentRating: "Everyone 10+", Genres: "Arcade;Action & Adventure", RevenueEstimate: 69900000},
		{Name: "Hitman Sniper", Category: "GAME", Rating: 4.6, Reviews: 408292, SizeMBs: 29, Installs: 10000000, Type: "Paid", Price: 0.99, ContentRating: "Mature 17+", Genres: "Action", RevenueEstimate: 9900000},
		{Name: "Weather", Category: "WEATHER", Rating: 4.4, Reviews: 1000, SizeMBs: 3, Installs: 10000, Type: "Free", ContentRating: "Everyone", Genres: "Weather"},
		{Name: "Calc", Category: "TOOLS", Rating: 4.6, Reviews: 500, SizeMBs: 1, Installs: 5000, Type: "Paid", Price: 4.99, ContentRating: "Everyone", Genres: "Tools", RevenueEstimate: 24950},
		{Name: "Subway Surfers", Category: "GAME", Rating: 4.5, Reviews: 27722264, SizeMBs: 76, Installs: 1000000000, Type: "Free", ContentRating: "Everyone 10+", Genres: "Arcade"},
		{Name: "Photo Editor", Category: "PHOTOGRAPHY", Rating: 4.6, Reviews: 200, SizeMBs: 12.5, Installs: 1000, Type: "Free", ContentRating: "Everyone", Genres: "Photography;Creativity"},
	}
}

func names(apps []models.App) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.Name)
	}
	return out
}

func labels(counts []models.Count) []string {
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Label)
	}
	return out
}

func TestInsightTopRatedStableTies(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	want := []string{"Hitman Sniper", "Calc", "Photo Editor", "Instagram", "Minecraft"}
	if got := names(r.TopRated); !slices.Equal(got, want) {
		t.Errorf("TopRated: got %v, want %v", got, want)
	}
}

func TestInsightTopLists(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	tests := []struct {
		name string
		got  []models.App
		want []string
	}{
		{"Largest", r.Largest, []string{"Subway Surfers", "Hitman Sniper", "Minecraft", "Photo Editor", "Instagram"}},
		{"MostReviewed", r.MostReviewed, []string{"Instagram", "Subway Surfers", "Minecraft", "Hitman Sniper", "Weather"}},
		{"HighestRevenue", r.HighestRevenue, []string{"Minecraft", "Hitman Sniper", "Calc", "Instagram", "Weather", "Subway Surfers", "Photo Editor"}},
	}
	for _, tt := range tests {
		if got := names(tt.got); !slices.Equal(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInsightTopListsDescending(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	checks := map[string]struct {
		apps   []models.App
		metric func(models.App) float64
	}{
		"TopRated":       {r.TopRated, func(a models.App) float64 { return a.Rating }},
		"Largest":        {r.Largest, func(a models.App) float64 { return a.SizeMBs }},
		"MostReviewed":   {r.MostReviewed, func(a models.App) float64 { return float64(a.Reviews) }},
		"HighestRevenue": {r.HighestRevenue, func(a models.App) float64 { return a.RevenueEstimate }},
	}
	for name, c := range checks {
		for i := 1; i < len(c.apps); i++ {
			if c.metric(c.apps[i]) > c.metric(c.apps[i-1]) {
				t.Errorf("%s not descending at %d: %v", name, i, names(c.apps))
			}
		}
	}
}

func TestInsightContentRatings(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	want := []models.Count{
		{Label: "Everyone", Count: 3},
		{Label: "Everyone 10+", Count: 2},
		{Label: "Teen", Count: 1},
		{Label: "Mature 17+", Count: 1},
	}
	if !slices.Equal(r.ContentRatings, want) {
		t.Errorf("ContentRatings: got %v, want %v", r.ContentRatings, want)
	}
}

func TestInsightCategories(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	if got := labels(r.TopCategories); got[0] != "GAME" || len(got) != 6 {
		t.Errorf("TopCategories: got %v, want GAME first of 6", got)
	}

	wantInstalls := []string{"PHOTOGRAPHY", "TOOLS", "WEATHER", "FAMILY", "SOCIAL", "GAME"}
	var gotInstalls []string
	for _, c := range r.CategoryInstalls {
		gotInstalls = append(gotInstalls, c.Category)
	}
	if !slices.Equal(gotInstalls, wantInstalls) {
		t.Errorf("CategoryInstalls order: got %v, want %v", gotInstalls, wantInstalls)
	}
	if last := r.CategoryInstalls[len(r.CategoryInstalls)-1]; last.Installs != 1010000000 {
		t.Errorf("GAME installs: got %d, want 1010000000", last.Installs)
	}

	if r.CategoryMerged[0].Category != "GAME" || r.CategoryMerged[0].Apps != 2 {
		t.Errorf("CategoryMerged[0]: got %+v, want GAME with 2 apps", r.CategoryMerged[0])
	}
}

func TestInsightCategoryKeysMatchDataset(t *testing.T) {
	apps := sampleApps()
	r := NewInsightService(newTestLogger()).Generate(apps)

	distinct := map[string]bool{}
	for _, a := range apps {
		distinct[a.Category] = true
	}

	countKeys := map[string]bool{}
	for _, c := range r.CategoryApps {
		countKeys[c.Label] = true
	}
	installKeys := map[string]bool{}
	for _, c := range r.CategoryInstalls {
		installKeys[c.Category] = true
	}

	if len(countKeys) != len(distinct) || len(installKeys) != len(distinct) {
		t.Fatalf("key counts differ: dataset %d, counts %d, installs %d", len(distinct), len(countKeys), len(installKeys))
	}
	for k := range distinct {
		if !countKeys[k] || !installKeys[k] {
			t.Errorf("category %q missing from an aggregate", k)
		}
	}
}

func TestInsightGenres(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	if r.Genres[0] != (models.Count{Label: "Arcade", Count: 2}) {
		t.Errorf("Genres[0]: got %+v, want Arcade x2", r.Genres[0])
	}
	total := 0
	for _, g := range r.Genres {
		total += g.Count
	}
	if total != 9 {
		t.Errorf("genre occurrences: got %d, want 9", total)
	}
}

func TestInsightFreeVsPaid(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	want := []models.CategoryTypeCount{
		{Category: "FAMILY", Type: "Paid", Apps: 1},
		{Category: "GAME", Type: "Free", Apps: 1},
		{Category: "GAME", Type: "Paid", Apps: 1},
		{Category: "PHOTOGRAPHY", Type: "Free", Apps: 1},
		{Category: "SOCIAL", Type: "Free", Apps: 1},
		{Category: "TOOLS", Type: "Paid", Apps: 1},
		{Category: "WEATHER", Type: "Free", Apps: 1},
	}
	if !slices.Equal(r.FreeVsPaid, want) {
		t.Errorf("FreeVsPaid: got %v, want %v", r.FreeVsPaid, want)
	}
}

func TestInsightInstallsByType(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps())

	if len(r.InstallsByType) != 2 {
		t.Fatalf("InstallsByType: got %d types, want 2", len(r.InstallsByType))
	}
	free, paid := r.InstallsByType[0], r.InstallsByType[1]
	if free.Type != "Free" || free.Count != 4 {
		t.Errorf("Free: got %+v", free)
	}
	if paid.Type != "Paid" || paid.Count != 3 || paid.Median != 10000000 {
		t.Errorf("Paid: got %+v, want 3 apps with median 10000000", paid)
	}
	for _, b := range r.InstallsByType {
		if !(b.Min <= b.Q1 && b.Q1 <= b.Median && b.Median <= b.Q3 && b.Q3 <= b.Max) {
			t.Errorf("%s: quartiles out of order: %+v", b.Type, b)
		}
		if b.NotchLow > b.Median || b.NotchHigh < b.Median {
			t.Errorf("%s: notch does not bracket the median: %+v", b.Type, b)
		}
	}
}

func TestInsightSingleApp(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleApps()[:1])
	if len(r.InstallsByType) != 1 || r.InstallsByType[0].Median != 1000000000 {
		t.Errorf("single app box summary: got %+v", r.InstallsByType)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(nil)
	if r.CleanCount != 0 {
		t.Errorf("expected 0 clean apps for empty input")
	}
	if r.TopRated == nil || len(r.TopRated) != 0 || len(r.Genres) != 0 || len(r.InstallsByType) != 0 {
		t.Errorf("empty input should give empty, non-nil aggregates: %+v", r)
	}
}

func TestInsightDoesNotReorderInput(t *testing.T) {
	apps := sampleApps()
	before := names(apps)
	NewInsightService(newTestLogger()).Generate(apps)
	if !slices.Equal(names(apps), before) {
		t.Errorf("Generate reordered its input: %v", names(apps))
	}
}
