package server

import (
	"fmt"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"playstore-dashboard/models"
)

var (
	rawHeader = table.Row{"App", "Category", "Rating", "Reviews", "Size_MBs", "Installs", "Type", "Price", "Content_Rating", "Genres"}
	appHeader = table.Row{"App", "Category", "Rating", "Reviews", "Size_MBs", "Installs", "Type", "Price", "Content_Rating", "Genres", "Revenue_Estimate"}
)

// htmlTable renders rows as an escaped HTML table. The row index column
// mirrors the position of each record in its source slice.
func htmlTable(header table.Row, rows []table.Row) template.HTML {
	t := table.NewWriter()
	t.Style().HTML.CSSClass = "table"
	t.AppendHeader(header)
	t.AppendRows(rows)
	return template.HTML(t.RenderHTML())
}

func rawAppsTable(raw []models.RawApp, indices []int) template.HTML {
	rows := make([]table.Row, 0, len(indices))
	for _, i := range indices {
		r := raw[i]
		rating := "NaN"
		if r.HasRating {
			rating = formatFloat(r.Rating)
		}
		rows = append(rows, table.Row{
			i, r.Name, r.Category, rating, humanize.Comma(r.Reviews), formatFloat(r.SizeMBs),
			r.Installs, r.Type, r.Price, r.ContentRating, r.Genres,
		})
	}
	return htmlTable(append(table.Row{""}, rawHeader...), rows)
}

func appsTable(apps []models.App, indices []int) template.HTML {
	rows := make([]table.Row, 0, len(indices))
	for _, i := range indices {
		a := apps[i]
		rows = append(rows, table.Row{
			i, a.Name, a.Category, formatFloat(a.Rating), humanize.Comma(a.Reviews), formatFloat(a.SizeMBs),
			humanize.Comma(a.Installs), a.Type, formatFloat(a.Price), a.ContentRating, a.Genres,
			formatFloat(a.RevenueEstimate),
		})
	}
	return htmlTable(append(table.Row{""}, appHeader...), rows)
}

// rankedTable renders a top-N list numbered from 1.
func rankedTable(apps []models.App) template.HTML {
	rows := make([]table.Row, 0, len(apps))
	for i, a := range apps {
		rows = append(rows, table.Row{
			i + 1, a.Name, a.Category, formatFloat(a.Rating), humanize.Comma(a.Reviews), formatFloat(a.SizeMBs),
			humanize.Comma(a.Installs), a.Type, formatFloat(a.Price), a.ContentRating, a.Genres,
			formatFloat(a.RevenueEstimate),
		})
	}
	return htmlTable(append(table.Row{"#"}, appHeader...), rows)
}

func summaryTable(s models.Summary) template.HTML {
	header := table.Row{""}
	for _, c := range s.Columns {
		header = append(header, c.Name)
	}

	rows := make([]table.Row, 0, len(s.Stats))
	for i, stat := range s.Stats {
		row := table.Row{stat}
		for _, c := range s.Columns {
			row = append(row, formatFloat(c.Values[i]))
		}
		rows = append(rows, row)
	}
	return htmlTable(header, rows)
}

func boxTable(boxes []models.BoxSummary) template.HTML {
	rows := make([]table.Row, 0, len(boxes))
	for _, b := range boxes {
		rows = append(rows, table.Row{
			b.Type, b.Count, formatFloat(b.Min), formatFloat(b.Q1), formatFloat(b.Median),
			formatFloat(b.Q3), formatFloat(b.Max), fmt.Sprintf("%s to %s", formatFloat(b.NotchLow), formatFloat(b.NotchHigh)),
		})
	}
	return htmlTable(table.Row{"Type", "Apps", "Min", "Q1", "Median", "Q3", "Max", "Notch"}, rows)
}

// formatFloat prints two decimals with thousands separators.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return humanize.FormatFloat("#,###.##", f)
}
