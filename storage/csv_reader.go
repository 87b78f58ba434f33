package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"playstore-dashboard/models"
)

// Columns every input file must carry. Last_Updated and Android_Ver may be
// present but are never read.
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSizeMBs       = "Size_MBs"
	ColInstalls      = "Installs"
	ColType          = "Type"
	ColPrice         = "Price"
	ColContentRating = "Content_Rating"
	ColGenres        = "Genres"
)

var requiredColumns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSizeMBs,
	ColInstalls, ColType, ColPrice, ColContentRating, ColGenres,
}

// missingMarkers are the cell values read as "no value".
var missingMarkers = map[string]struct{}{
	"": {}, "nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {},
}

// CSVReader loads raw app records from a delimited text file.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the CSV file at path. The file is not
// opened until Load is called.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Name returns the file path the reader loads from.
func (c *CSVReader) Name() string {
	return c.path
}

// Load opens the file and parses every record into a RawApp.
func (c *CSVReader) Load() ([]models.RawApp, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &DataLoadError{Path: c.path, Reason: "open file", Err: err}
	}
	defer f.Close()

	return ReadApps(f, c.path)
}

// ReadApps parses CSV content from r. name is only used in error messages.
func ReadApps(r io.Reader, name string) ([]models.RawApp, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataLoadError{Path: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, &DataLoadError{Path: name, Line: 1, Reason: "read header", Err: err}
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, &DataLoadError{Path: name, Line: 1, Reason: "validate header", Err: err}
	}

	var apps []models.RawApp
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &DataLoadError{Path: name, Line: line, Reason: "read record", Err: err}
		}
		line, _ := cr.FieldPos(0)

		app, err := parseRecord(rec, idx)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Reason: "parse record", Err: err}
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func indexColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRecord(rec []string, idx map[string]int) (models.RawApp, error) {
	get := func(col string) string {
		return strings.TrimSpace(rec[idx[col]])
	}

	app := models.RawApp{
		Name:          get(ColApp),
		Category:      get(ColCategory),
		Installs:      get(ColInstalls),
		Type:          get(ColType),
		Price:         get(ColPrice),
		ContentRating: get(ColContentRating),
		Genres:        get(ColGenres),
	}

	if raw := get(ColRating); !isMissing(raw) {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return app, fmt.Errorf("%s %q: %w", ColRating, raw, err)
		}
		app.Rating, app.HasRating = rating, true
	}

	reviews, err := strconv.ParseInt(get(ColReviews), 10, 64)
	if err != nil {
		return app, fmt.Errorf("%s %q: %w", ColReviews, get(ColReviews), err)
	}
	app.Reviews = reviews

	size, err := strconv.ParseFloat(get(ColSizeMBs), 64)
	if err != nil {
		return app, fmt.Errorf("%s %q: %w", ColSizeMBs, get(ColSizeMBs), err)
	}
	app.SizeMBs = size

	return app, nil
}

func isMissing(s string) bool {
	_, ok := missingMarkers[strings.ToLower(s)]
	return ok
}
