package services

import (
	"math"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"playstore-dashboard/models"
)

// SummaryStats are the row labels of every Summary, in order.
var SummaryStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Positions in SummaryStats filled from gota's Describe. The quartiles are
// interpolated separately: Describe picks empirical quantiles, so the median
// of an even-length column would be its lower middle value.
var describeLabels = map[string]int{"mean": 1, "stddev": 2, "min": 3, "max": 7}

type numericColumn struct {
	name   string
	values []float64
}

// SummarizeRaw describes the numeric columns of the raw records. Missing
// ratings are skipped.
func SummarizeRaw(raw []models.RawApp) models.Summary {
	rating := numericColumn{name: "Rating"}
	reviews := numericColumn{name: "Reviews"}
	size := numericColumn{name: "Size_MBs"}
	for _, r := range raw {
		if r.HasRating {
			rating.values = append(rating.values, r.Rating)
		}
		reviews.values = append(reviews.values, float64(r.Reviews))
		size.values = append(size.values, r.SizeMBs)
	}
	return summarize(rating, reviews, size)
}

// SummarizeClean describes the numeric columns of the cleaned apps.
func SummarizeClean(apps []models.App) models.Summary {
	cols := []numericColumn{
		{name: "Rating"}, {name: "Reviews"}, {name: "Size_MBs"},
		{name: "Installs"}, {name: "Price"}, {name: "Revenue_Estimate"},
	}
	for _, a := range apps {
		cols[0].values = append(cols[0].values, a.Rating)
		cols[1].values = append(cols[1].values, float64(a.Reviews))
		cols[2].values = append(cols[2].values, a.SizeMBs)
		cols[3].values = append(cols[3].values, float64(a.Installs))
		cols[4].values = append(cols[4].values, a.Price)
		cols[5].values = append(cols[5].values, a.RevenueEstimate)
	}
	return summarize(cols...)
}

func summarize(cols ...numericColumn) models.Summary {
	s := models.Summary{Stats: SummaryStats}
	for _, c := range cols {
		s.Columns = append(s.Columns, models.SummaryColumn{Name: c.name, Values: describe(c)})
	}
	return s
}

// describe returns count, mean, std, min, the three quartiles and max.
// Columns with no values yield NaN for everything but count.
func describe(c numericColumn) []float64 {
	out := make([]float64, len(SummaryStats))
	out[0] = float64(len(c.values))
	for i := 1; i < len(out); i++ {
		out[i] = math.NaN()
	}
	if len(c.values) == 0 {
		return out
	}

	d := dataframe.New(series.New(c.values, series.Float, c.name)).Describe()
	if d.Err != nil {
		return out
	}

	labels := d.Col("column").Records()
	values := d.Col(c.name).Float()
	byLabel := make(map[string]float64, len(labels))
	for i, l := range labels {
		if i < len(values) {
			byLabel[l] = values[i]
		}
	}
	for l, pos := range describeLabels {
		if v, ok := byLabel[l]; ok {
			out[pos] = v
		}
	}

	sorted := slices.Sorted(slices.Values(c.values))
	out[4] = linearQuantile(sorted, 0.25)
	if median, err := stats.Median(sorted); err == nil {
		out[5] = median
	}
	out[6] = linearQuantile(sorted, 0.75)
	return out
}

// linearQuantile interpolates between the two closest ranks of sorted,
// which must be non-empty.
func linearQuantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
