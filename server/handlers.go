package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"math/rand/v2"
	"net/http"
	"slices"

	"playstore-dashboard/models"
	"playstore-dashboard/services"
	"playstore-dashboard/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"index":  parsePage("index"),
	"stats":  parsePage("stats"),
	"data":   parsePage("data"),
	"graphs": parsePage("graphs"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

// Handlers provides the HTTP handlers of the dashboard. They only read the
// Dataset, so one Handlers value serves any number of concurrent requests.
type Handlers struct {
	ds         *services.Dataset
	logger     *utils.Logger
	sampleSize int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ds *services.Dataset, logger *utils.Logger, sampleSize int) *Handlers {
	if sampleSize < 1 {
		sampleSize = 10
	}
	return &Handlers{ds: ds, logger: logger, sampleSize: sampleSize}
}

type homePage struct {
	Report      *models.InsightReport
	RawSample   template.HTML
	CleanSample template.HTML
	Chart       models.Chart
}

// HomePage shows a random sample of raw and clean rows and the content rating donut.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	chart, _ := h.ds.Chart(services.ChartContentRatingDonut)
	h.render(w, "index", homePage{
		Report:      h.ds.Report,
		RawSample:   rawAppsTable(h.ds.Raw, sampleIndices(len(h.ds.Raw), h.sampleSize)),
		CleanSample: appsTable(h.ds.Clean, sampleIndices(len(h.ds.Clean), h.sampleSize)),
		Chart:       chart,
	})
}

type statsPage struct {
	Report         *models.InsightReport
	RawSummary     template.HTML
	CleanSummary   template.HTML
	TopRated       template.HTML
	MostReviewed   template.HTML
	Largest        template.HTML
	HighestRevenue template.HTML
	InstallsByType template.HTML
}

// StatsPage shows summary statistics and the top-N tables.
func (h *Handlers) StatsPage(w http.ResponseWriter, r *http.Request) {
	rep := h.ds.Report
	h.render(w, "stats", statsPage{
		Report:         rep,
		RawSummary:     summaryTable(h.ds.RawSummary),
		CleanSummary:   summaryTable(h.ds.CleanSummary),
		TopRated:       rankedTable(rep.TopRated),
		MostReviewed:   rankedTable(rep.MostReviewed),
		Largest:        rankedTable(rep.Largest),
		HighestRevenue: rankedTable(rep.HighestRevenue),
		InstallsByType: boxTable(rep.InstallsByType),
	})
}

type dataPage struct {
	Source string
	Count  int
	Table  template.HTML
}

// DataPage shows the full clean table.
func (h *Handlers) DataPage(w http.ResponseWriter, r *http.Request) {
	all := make([]int, len(h.ds.Clean))
	for i := range all {
		all[i] = i
	}
	h.render(w, "data", dataPage{
		Source: h.ds.Source,
		Count:  len(h.ds.Clean),
		Table:  appsTable(h.ds.Clean, all),
	})
}

type graphsPage struct {
	Charts []models.Chart
}

// GraphsPage shows every chart of the graphs page.
func (h *Handlers) GraphsPage(w http.ResponseWriter, r *http.Request) {
	charts := make([]models.Chart, 0, len(services.GraphCharts))
	for _, name := range services.GraphCharts {
		if c, ok := h.ds.Chart(name); ok {
			charts = append(charts, c)
		}
	}
	h.render(w, "graphs", graphsPage{Charts: charts})
}

// ChartsJSON returns every chart descriptor keyed by name.
func (h *Handlers) ChartsJSON(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]models.Chart, len(h.ds.Charts))
	for _, c := range h.ds.Charts {
		out[c.Name] = c
	}
	h.writeJSON(w, out)
}

// ReportJSON returns the insight report.
func (h *Handlers) ReportJSON(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.ds.Report)
}

// Healthz answers liveness probes.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("[http] render %s: %v", page, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("[http] encode json: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

// sampleIndices picks up to k distinct positions out of n, in ascending order.
func sampleIndices(n, k int) []int {
	if k > n {
		k = n
	}
	idx := rand.Perm(n)[:k]
	slices.Sort(idx)
	return idx
}
