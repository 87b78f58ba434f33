package services

import (
	"fmt"

	"playstore-dashboard/models"
	"playstore-dashboard/storage"
	"playstore-dashboard/utils"
)

// Dataset is the process-wide result of the pipeline: the raw and cleaned
// records plus every precomputed aggregate. It is built once at startup and
// shared read-only by all request handlers; nothing may modify it afterwards.
type Dataset struct {
	Source string

	Raw           []models.RawApp
	Clean         []models.App
	MissingRating []models.RawApp
	Duplicates    []models.RawApp

	Report       *models.InsightReport
	RawSummary   models.Summary
	CleanSummary models.Summary
	Charts       []models.Chart

	chartIndex map[string]int
}

// Chart returns the chart with the given name.
func (d *Dataset) Chart(name string) (models.Chart, bool) {
	i, ok := d.chartIndex[name]
	if !ok {
		return models.Chart{}, false
	}
	return d.Charts[i], true
}

// Pipeline loads, cleans and aggregates the dataset.
type Pipeline struct {
	logger   *utils.Logger
	cleaner  *Cleaner
	insights *InsightService
}

// NewPipeline wires a Cleaner and an InsightService sharing one logger.
func NewPipeline(logger *utils.Logger, policy ParsePolicy, priceCeiling float64) *Pipeline {
	return &Pipeline{
		logger:   logger,
		cleaner:  NewCleaner(logger, policy, priceCeiling),
		insights: NewInsightService(logger),
	}
}

// LoadAndClean reads the source once and returns the raw records alongside the
// cleaning result. Load failures are returned as *storage.DataLoadError, strict
// parse failures as *ParseError.
func (p *Pipeline) LoadAndClean(src storage.AppSource) ([]models.RawApp, *CleanResult, error) {
	raw, err := src.Load()
	if err != nil {
		return nil, nil, err
	}
	p.logger.Info("[pipeline] Loaded %d raw rows from %s", len(raw), src.Name())

	res, err := p.cleaner.Clean(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("clean %s: %w", src.Name(), err)
	}
	return raw, res, nil
}

// Run executes the whole pipeline and returns the immutable Dataset.
func (p *Pipeline) Run(src storage.AppSource) (*Dataset, error) {
	raw, res, err := p.LoadAndClean(src)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(src.Name(), raw, res, p.insights)
	if len(ds.MissingRating) > 0 {
		p.logger.Info("[pipeline] %d rows have no rating", len(ds.MissingRating))
	}
	if len(ds.Duplicates) > 0 {
		p.logger.Info("[pipeline] %d exact duplicate rows removed", len(ds.Duplicates))
	}
	p.logger.Info("[pipeline] Dataset ready: %d clean apps, %d charts", len(ds.Clean), len(ds.Charts))
	return ds, nil
}

// NewDataset computes every aggregate over a cleaning result.
func NewDataset(source string, raw []models.RawApp, res *CleanResult, insights *InsightService) *Dataset {
	report := insights.Generate(res.Apps)
	report.RawCount = len(raw)
	report.MissingRatingCount = len(res.MissingRating)
	report.DuplicateCount = len(res.Duplicates)

	ds := &Dataset{
		Source:        source,
		Raw:           raw,
		Clean:         res.Apps,
		MissingRating: res.MissingRating,
		Duplicates:    res.Duplicates,
		Report:        report,
		RawSummary:    SummarizeRaw(raw),
		CleanSummary:  SummarizeClean(res.Apps),
		Charts:        BuildCharts(report, res.Apps),
	}

	ds.chartIndex = make(map[string]int, len(ds.Charts))
	for i, c := range ds.Charts {
		ds.chartIndex[c.Name] = i
	}
	return ds
}
