package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"playstore-dashboard/models"
)

var (
	bannerColor  = color.New(color.FgMagenta, color.Bold)
	sectionColor = color.New(color.FgYellow, color.Bold)
)

// Print writes a terminal rendering of the report to w.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 60)

	bannerColor.Fprintf(w, "\n%s\n  📊 PLAY STORE APP INSIGHTS\n%s\n\n", sep, sep)

	section(w, "Overview")
	printTable(w, table.Row{"Metric", "Value"}, []table.Row{
		{"Raw rows", humanize.Comma(int64(r.RawCount))},
		{"Missing rating", humanize.Comma(int64(r.MissingRatingCount))},
		{"Exact duplicates", humanize.Comma(int64(r.DuplicateCount))},
		{"Clean apps", humanize.Comma(int64(r.CleanCount))},
	})

	printApps(w, "Top 5 Highest Rated", r.TopRated)
	printApps(w, "Top 5 Most Reviewed", r.MostReviewed)
	printApps(w, "Top 5 Largest", r.Largest)
	printApps(w, "Top 10 Highest Revenue Estimate", r.HighestRevenue)

	section(w, "Content Ratings")
	printCounts(w, "Content Rating", r.ContentRatings)

	section(w, "Top 10 Categories")
	printCounts(w, "Category", r.TopCategories)

	section(w, "Category Concentration")
	rows := make([]table.Row, 0, len(r.CategoryMerged))
	for _, c := range r.CategoryMerged {
		rows = append(rows, table.Row{c.Category, c.Apps, humanize.Comma(c.Installs)})
	}
	printTable(w, table.Row{"Category", "Apps", "Installs"}, rows)

	section(w, "Top 15 Genres")
	printCounts(w, "Genre", r.Genres[:min(15, len(r.Genres))])

	section(w, "Installs by Type")
	rows = rows[:0]
	for _, b := range r.InstallsByType {
		rows = append(rows, table.Row{
			b.Type, b.Count,
			humanize.Comma(int64(b.Q1)), humanize.Comma(int64(b.Median)), humanize.Comma(int64(b.Q3)),
		})
	}
	printTable(w, table.Row{"Type", "Apps", "Q1", "Median", "Q3"}, rows)

	bannerColor.Fprintf(w, "\n%s\n\n", sep)
}

func section(w io.Writer, title string) {
	sectionColor.Fprintf(w, "  %s\n", title)
}

func printApps(w io.Writer, title string, apps []models.App) {
	section(w, title)
	if len(apps) == 0 {
		fmt.Fprintln(w, "  No apps")
		return
	}
	rows := make([]table.Row, 0, len(apps))
	for i, a := range apps {
		rows = append(rows, table.Row{
			i + 1, truncate(a.Name, 40), a.Category,
			fmt.Sprintf("%.1f", a.Rating), humanize.Comma(a.Reviews),
			fmt.Sprintf("%.2f", a.SizeMBs), humanize.Comma(a.Installs),
			fmt.Sprintf("$%.2f", a.Price), "$" + humanize.CommafWithDigits(a.RevenueEstimate, 2),
		})
	}
	printTable(w, table.Row{"#", "App", "Category", "Rating", "Reviews", "Size MB", "Installs", "Price", "Revenue"}, rows)
}

func printCounts(w io.Writer, label string, counts []models.Count) {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, table.Row{c.Label, c.Count})
	}
	printTable(w, table.Row{label, "Apps"}, rows)
}

func printTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
