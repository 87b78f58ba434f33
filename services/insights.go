package services

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

const (
	topAppsLimit       = 5
	topRevenueLimit    = 10
	topCategoriesLimit = 10
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes every aggregate over the cleaned apps. apps is not modified.
func (s *InsightService) Generate(apps []models.App) *models.InsightReport {
	report := &models.InsightReport{
		CleanCount:       len(apps),
		TopRated:         []models.App{},
		Largest:          []models.App{},
		MostReviewed:     []models.App{},
		HighestRevenue:   []models.App{},
		ContentRatings:   []models.Count{},
		TopCategories:    []models.Count{},
		CategoryInstalls: []models.CategoryInstalls{},
		CategoryApps:     []models.Count{},
		CategoryMerged:   []models.CategoryStats{},
		Genres:           []models.Count{},
		FreeVsPaid:       []models.CategoryTypeCount{},
		InstallsByType:   []models.BoxSummary{},
	}

	if len(apps) == 0 {
		return report
	}

	report.TopRated = topBy(apps, topAppsLimit, func(a models.App) float64 { return a.Rating })
	report.Largest = topBy(apps, topAppsLimit, func(a models.App) float64 { return a.SizeMBs })
	report.MostReviewed = topBy(apps, topAppsLimit, func(a models.App) float64 { return float64(a.Reviews) })
	report.HighestRevenue = topBy(apps, topRevenueLimit, func(a models.App) float64 { return a.RevenueEstimate })

	var ratings, categories, genres []string
	for _, a := range apps {
		ratings = append(ratings, a.ContentRating)
		categories = append(categories, a.Category)
		genres = append(genres, a.GenreList()...)
	}
	report.ContentRatings = valueCounts(ratings)
	report.Genres = valueCounts(genres)

	categoryCounts := valueCounts(categories)
	report.TopCategories = categoryCounts[:min(topCategoriesLimit, len(categoryCounts))]

	report.CategoryApps, report.CategoryInstalls, report.CategoryMerged = groupByCategory(apps)
	report.FreeVsPaid = countByCategoryAndType(apps)
	report.InstallsByType = installsByType(apps)

	s.logger.Debug("[insights] %d apps across %d categories and %d genres",
		len(apps), len(report.CategoryApps), len(report.Genres))
	return report
}

// topBy returns the first n apps ordered by metric descending. The sort is
// stable, so ties keep their input order.
func topBy(apps []models.App, n int, metric func(models.App) float64) []models.App {
	sorted := slices.Clone(apps)
	slices.SortStableFunc(sorted, func(a, b models.App) int {
		return cmp.Compare(metric(b), metric(a))
	})
	return sorted[:min(n, len(sorted))]
}

// valueCounts counts each label and orders the result by count descending,
// ties in order of first appearance.
func valueCounts(labels []string) []models.Count {
	index := make(map[string]int)
	counts := []models.Count{}
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(counts)
			index[l] = i
			counts = append(counts, models.Count{Label: l})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b models.Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

func groupByCategory(apps []models.App) ([]models.Count, []models.CategoryInstalls, []models.CategoryStats) {
	byCat := make(map[string]*models.CategoryStats)
	for _, a := range apps {
		cs, ok := byCat[a.Category]
		if !ok {
			cs = &models.CategoryStats{Category: a.Category}
			byCat[a.Category] = cs
		}
		cs.Apps++
		cs.Installs += a.Installs
	}

	names := slices.Sorted(maps.Keys(byCat))
	counts := make([]models.Count, 0, len(names))
	installs := make([]models.CategoryInstalls, 0, len(names))
	merged := make([]models.CategoryStats, 0, len(names))
	for _, name := range names {
		cs := byCat[name]
		counts = append(counts, models.Count{Label: name, Count: cs.Apps})
		installs = append(installs, models.CategoryInstalls{Category: name, Installs: cs.Installs})
		merged = append(merged, *cs)
	}

	slices.SortStableFunc(installs, func(a, b models.CategoryInstalls) int {
		return cmp.Compare(a.Installs, b.Installs)
	})
	slices.SortStableFunc(merged, func(a, b models.CategoryStats) int {
		return cmp.Compare(b.Installs, a.Installs)
	})
	return counts, installs, merged
}

func countByCategoryAndType(apps []models.App) []models.CategoryTypeCount {
	type key struct{ category, typ string }
	counts := make(map[key]int)
	for _, a := range apps {
		counts[key{a.Category, a.Type}]++
	}

	out := make([]models.CategoryTypeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.CategoryTypeCount{Category: k.category, Type: k.typ, Apps: n})
	}
	slices.SortFunc(out, func(a, b models.CategoryTypeCount) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return out
}

// installsByType summarizes the installs distribution per app type the way a
// notched box plot draws it.
func installsByType(apps []models.App) []models.BoxSummary {
	byType := make(map[string]stats.Float64Data)
	for _, a := range apps {
		byType[a.Type] = append(byType[a.Type], float64(a.Installs))
	}

	out := make([]models.BoxSummary, 0, len(byType))
	for _, typ := range slices.Sorted(maps.Keys(byType)) {
		out = append(out, boxSummary(typ, byType[typ]))
	}
	return out
}

func boxSummary(typ string, data stats.Float64Data) models.BoxSummary {
	med, _ := stats.Median(data)
	q := stats.Quartiles{Q1: med, Q2: med, Q3: med}
	if len(data) > 1 {
		if qq, err := stats.Quartile(data); err == nil {
			q = qq
		}
	}
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)

	iqr := q.Q3 - q.Q1
	lowLimit, highLimit := q.Q1-1.5*iqr, q.Q3+1.5*iqr
	lowerFence, upperFence := hi, lo
	for _, v := range data {
		if v >= lowLimit && v < lowerFence {
			lowerFence = v
		}
		if v <= highLimit && v > upperFence {
			upperFence = v
		}
	}

	notch := 1.57 * iqr / math.Sqrt(float64(len(data)))
	return models.BoxSummary{
		Type:       typ,
		Count:      len(data),
		Min:        lo,
		Q1:         q.Q1,
		Median:     q.Q2,
		Q3:         q.Q3,
		Max:        hi,
		LowerFence: lowerFence,
		UpperFence: upperFence,
		NotchLow:   q.Q2 - notch,
		NotchHigh:  q.Q2 + notch,
	}
}
