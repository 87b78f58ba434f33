package services

import (
	"encoding/json"
	"testing"
)

func TestChartsShape(t *testing.T) {
	apps := sampleApps()
	r := NewInsightService(newTestLogger()).Generate(apps)
	charts := BuildCharts(r, apps)

	byName := map[string]int{}
	for i, c := range charts {
		byName[c.Name] = i
	}

	donut := charts[byName[ChartContentRatingDonut]]
	if donut.Data[0].Type != "pie" || donut.Data[0].Hole != 0.6 || donut.Data[0].TextPosition != "inside" {
		t.Errorf("donut: got %+v", donut.Data[0])
	}
	if donut.Data[0].Labels[0] != "Everyone" || donut.Data[0].Values[0] != 3 {
		t.Errorf("donut first slice: got %s=%v", donut.Data[0].Labels[0], donut.Data[0].Values[0])
	}

	hbar := charts[byName[ChartCategoryInstalls]]
	if hbar.Data[0].Orientation != "h" || hbar.Layout.Title.Text != "Category Popularity" {
		t.Errorf("category installs: got %+v", hbar)
	}
	if hbar.Layout.XAxis.Title.Text != "Number of Downloads" {
		t.Errorf("category installs x title: got %q", hbar.Layout.XAxis.Title.Text)
	}

	scatter := charts[byName[ChartCategoryScatter]]
	if scatter.Layout.YAxis.Type != "log" || len(scatter.Data[0].HoverText) != 6 {
		t.Errorf("scatter: got %+v", scatter)
	}

	box := charts[byName[ChartInstallsByType]]
	if len(box.Data) != 2 || !box.Data[0].Notched || box.Data[0].BoxPoints != "all" || box.Layout.YAxis.Type != "log" {
		t.Errorf("box: got %+v", box)
	}
	if len(box.Data[0].Y)+len(box.Data[1].Y) != len(apps) {
		t.Errorf("box points: got %d + %d, want %d", len(box.Data[0].Y), len(box.Data[1].Y), len(apps))
	}

	genres := charts[byName[ChartTopGenres]]
	if len(genres.Data[0].X) != 8 || *genres.Data[0].Marker.ShowScale {
		t.Errorf("genres: got %+v", genres.Data[0])
	}

	grouped := charts[byName[ChartFreeVsPaid]]
	if grouped.Layout.BarMode != "group" || grouped.Layout.XAxis.CategoryOrder != "total descending" {
		t.Errorf("free vs paid layout: got %+v", grouped.Layout)
	}
	if len(grouped.Data) != 2 || grouped.Data[0].Name != "Free" || grouped.Data[1].Name != "Paid" {
		t.Errorf("free vs paid traces: got %d", len(grouped.Data))
	}
}

func TestChartsTopGenresLimit(t *testing.T) {
	apps := sampleApps()
	for i := range apps {
		apps[i].Genres = "A;B;C;D;E;F;G;H;I;J;K;L;M;N;O;P;Q"
	}
	r := NewInsightService(newTestLogger()).Generate(apps)
	charts := BuildCharts(r, apps)

	for _, c := range charts {
		if c.Name == ChartTopGenres && len(c.Data[0].X) != topGenresLimit {
			t.Errorf("top genres: got %d bars, want %d", len(c.Data[0].X), topGenresLimit)
		}
	}
}

func TestChartsSerializeForPlotly(t *testing.T) {
	apps := sampleApps()
	r := NewInsightService(newTestLogger()).Generate(apps)

	for _, c := range BuildCharts(r, apps) {
		b, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("marshal %s: %v", c.Name, err)
		}
		var fig map[string]any
		if err := json.Unmarshal(b, &fig); err != nil {
			t.Fatalf("unmarshal %s: %v", c.Name, err)
		}
		if _, ok := fig["data"]; !ok {
			t.Errorf("%s: missing data key", c.Name)
		}
		if _, ok := fig["layout"]; !ok {
			t.Errorf("%s: missing layout key", c.Name)
		}
	}
}
