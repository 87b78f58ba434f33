package services

import (
	"maps"
	"slices"

	"playstore-dashboard/models"
)

// Chart names, in the order BuildCharts returns them.
const (
	ChartContentRatingDonut = "content_rating_donut"
	ChartContentRating      = "content_rating"
	ChartTopCategories      = "top_categories"
	ChartCategoryInstalls   = "category_installs"
	ChartCategoryScatter    = "category_concentration"
	ChartInstallsByType     = "installs_by_type"
	ChartTopGenres          = "top_genres"
	ChartFreeVsPaid         = "free_vs_paid"
)

// GraphCharts are the charts shown on the graphs page.
var GraphCharts = []string{
	ChartContentRating, ChartTopCategories, ChartCategoryInstalls, ChartCategoryScatter,
	ChartInstallsByType, ChartTopGenres, ChartFreeVsPaid,
}

const topGenresLimit = 15

// agsunset is the carto "Agsunset" sequential scale as Plotly [position, colour] pairs.
var agsunset = [][]any{
	{0.0, "rgb(75, 41, 145)"},
	{0.1667, "rgb(135, 44, 162)"},
	{0.3333, "rgb(192, 54, 157)"},
	{0.5, "rgb(234, 79, 136)"},
	{0.6667, "rgb(250, 120, 118)"},
	{0.8333, "rgb(246, 169, 122)"},
	{1.0, "rgb(237, 217, 163)"},
}

// BuildCharts shapes the report (and, for the box plot, the cleaned apps)
// into Plotly figures.
func BuildCharts(r *models.InsightReport, apps []models.App) []models.Chart {
	return []models.Chart{
		contentRatingChart(ChartContentRatingDonut, r.ContentRatings, 0.6, "inside", "percent"),
		contentRatingChart(ChartContentRating, r.ContentRatings, 0, "outside", "percent+label"),
		topCategoriesChart(r.TopCategories),
		categoryInstallsChart(r.CategoryInstalls),
		categoryScatterChart(r.CategoryMerged),
		installsByTypeChart(apps),
		topGenresChart(r.Genres),
		freeVsPaidChart(r.FreeVsPaid),
	}
}

func contentRatingChart(name string, counts []models.Count, hole float64, textPosition, textInfo string) models.Chart {
	trace := models.Trace{
		Type:         "pie",
		Labels:       make([]string, 0, len(counts)),
		Values:       make([]float64, 0, len(counts)),
		Hole:         hole,
		TextInfo:     textInfo,
		TextPosition: textPosition,
	}
	if textPosition == "inside" {
		trace.TextFont = &models.Font{Size: 15}
	}
	for _, c := range counts {
		trace.Labels = append(trace.Labels, c.Label)
		trace.Values = append(trace.Values, float64(c.Count))
	}
	return models.Chart{
		Name:   name,
		Data:   []models.Trace{trace},
		Layout: models.Layout{Title: title("Content Rating")},
	}
}

func topCategoriesChart(counts []models.Count) models.Chart {
	trace := models.Trace{Type: "bar", X: []any{}, Y: []any{}}
	for _, c := range counts {
		trace.X = append(trace.X, c.Label)
		trace.Y = append(trace.Y, c.Count)
	}
	return models.Chart{
		Name: ChartTopCategories,
		Data: []models.Trace{trace},
		Layout: models.Layout{
			XAxis: &models.Axis{Title: title("Category")},
			YAxis: &models.Axis{Title: title("Number of Apps")},
		},
	}
}

func categoryInstallsChart(installs []models.CategoryInstalls) models.Chart {
	trace := models.Trace{Type: "bar", Orientation: "h", X: []any{}, Y: []any{}}
	for _, c := range installs {
		trace.X = append(trace.X, c.Installs)
		trace.Y = append(trace.Y, c.Category)
	}
	return models.Chart{
		Name: ChartCategoryInstalls,
		Data: []models.Trace{trace},
		Layout: models.Layout{
			Title: title("Category Popularity"),
			XAxis: &models.Axis{Title: title("Number of Downloads")},
			YAxis: &models.Axis{Title: title("Category")},
		},
	}
}

func categoryScatterChart(merged []models.CategoryStats) models.Chart {
	trace := models.Trace{Type: "scatter", Mode: "markers", X: []any{}, Y: []any{}}
	sizes := make([]float64, 0, len(merged))
	colors := make([]float64, 0, len(merged))
	var maxApps float64
	for _, c := range merged {
		trace.X = append(trace.X, c.Apps)
		trace.Y = append(trace.Y, c.Installs)
		trace.HoverText = append(trace.HoverText, c.Category)
		sizes = append(sizes, float64(c.Apps))
		colors = append(colors, float64(c.Installs))
		maxApps = max(maxApps, float64(c.Apps))
	}

	marker := &models.Marker{Size: sizes, Color: colors, SizeMode: "area"}
	if maxApps > 0 {
		// Largest bubble gets a 40px diameter.
		marker.SizeRef = 2 * maxApps / (40 * 40)
	}
	trace.Marker = marker

	return models.Chart{
		Name: ChartCategoryScatter,
		Data: []models.Trace{trace},
		Layout: models.Layout{
			Title: title("Category Concentration"),
			XAxis: &models.Axis{Title: title("Number of Apps (Lower=More Concentrated)")},
			YAxis: &models.Axis{Title: title("Installs"), Type: "log"},
		},
	}
}

func installsByTypeChart(apps []models.App) models.Chart {
	byType := make(map[string][]any)
	for _, a := range apps {
		byType[a.Type] = append(byType[a.Type], a.Installs)
	}

	traces := []models.Trace{}
	for _, typ := range slices.Sorted(maps.Keys(byType)) {
		traces = append(traces, models.Trace{
			Type:      "box",
			Name:      typ,
			Y:         byType[typ],
			BoxPoints: "all",
			Notched:   true,
		})
	}

	return models.Chart{
		Name: ChartInstallsByType,
		Data: traces,
		Layout: models.Layout{
			Title: title("How Many Downloads are Paid Apps Giving Up?"),
			XAxis: &models.Axis{Title: title("Type")},
			YAxis: &models.Axis{Title: title("Installs"), Type: "log"},
		},
	}
}

func topGenresChart(genres []models.Count) models.Chart {
	top := genres[:min(topGenresLimit, len(genres))]
	trace := models.Trace{Type: "bar", X: []any{}, Y: []any{}}
	colors := make([]float64, 0, len(top))
	for _, g := range top {
		trace.X = append(trace.X, g.Label)
		trace.Y = append(trace.Y, g.Count)
		trace.HoverText = append(trace.HoverText, g.Label)
		colors = append(colors, float64(g.Count))
	}
	trace.Marker = &models.Marker{Color: colors, ColorScale: agsunset, ShowScale: boolPtr(false)}

	return models.Chart{
		Name: ChartTopGenres,
		Data: []models.Trace{trace},
		Layout: models.Layout{
			Title: title("Top Genres"),
			XAxis: &models.Axis{Title: title("Genre")},
			YAxis: &models.Axis{Title: title("Number of Apps")},
		},
	}
}

func freeVsPaidChart(counts []models.CategoryTypeCount) models.Chart {
	byType := make(map[string]*models.Trace)
	for _, c := range counts {
		tr, ok := byType[c.Type]
		if !ok {
			tr = &models.Trace{Type: "bar", Name: c.Type, X: []any{}, Y: []any{}}
			byType[c.Type] = tr
		}
		tr.X = append(tr.X, c.Category)
		tr.Y = append(tr.Y, c.Apps)
	}

	traces := []models.Trace{}
	for _, typ := range slices.Sorted(maps.Keys(byType)) {
		traces = append(traces, *byType[typ])
	}

	return models.Chart{
		Name: ChartFreeVsPaid,
		Data: traces,
		Layout: models.Layout{
			Title:   title("Free vs Paid Apps by Category"),
			BarMode: "group",
			XAxis:   &models.Axis{Title: title("Category"), CategoryOrder: "total descending"},
			YAxis:   &models.Axis{Title: title("Number of Apps"), Type: "log"},
		},
	}
}

func title(text string) *models.Title {
	return &models.Title{Text: text}
}

func boolPtr(b bool) *bool {
	return &b
}
