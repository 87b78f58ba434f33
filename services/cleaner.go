package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

// DefaultPriceCeiling is the price at and above which a row is treated as a
// data-entry outlier.
const DefaultPriceCeiling = 250

// ParsePolicy decides what happens when Installs or Price cannot be parsed.
type ParsePolicy int

const (
	// ParseExclude drops the offending row and logs a warning.
	ParseExclude ParsePolicy = iota
	// ParseStrict aborts cleaning with a *ParseError.
	ParseStrict
)

func (p ParsePolicy) String() string {
	if p == ParseStrict {
		return "strict"
	}
	return "exclude"
}

// ParseError reports a numeric field that could not be normalized.
// Row is the 1-based position of the record in the raw input.
type ParseError struct {
	Row   int
	App   string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d (%s): parse %s %q: %v", e.Row, e.App, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CleanResult is the output of Cleaner.Clean. MissingRating and Duplicates are
// diagnostics and are not part of Apps.
type CleanResult struct {
	Apps          []models.App
	MissingRating []models.RawApp
	Duplicates    []models.RawApp
	Excluded      int
	Outliers      int
	// UniqueListings counts distinct (name, type, price) keys among rated,
	// non-identical rows, before parsing and the price ceiling.
	UniqueListings int
}

// appKey identifies an app listing for deduplication.
type appKey struct {
	name, typ, price string
}

// Cleaner transforms RawApps into clean, type-normalized Apps.
type Cleaner struct {
	logger       *utils.Logger
	policy       ParsePolicy
	priceCeiling decimal.Decimal
}

// NewCleaner creates a Cleaner. A non-positive priceCeiling selects DefaultPriceCeiling.
func NewCleaner(logger *utils.Logger, policy ParsePolicy, priceCeiling float64) *Cleaner {
	if priceCeiling <= 0 {
		priceCeiling = DefaultPriceCeiling
	}
	return &Cleaner{
		logger:       logger,
		policy:       policy,
		priceCeiling: decimal.NewFromFloat(priceCeiling),
	}
}

// Clean runs the cleaning sequence over raw, which is left untouched:
// missing ratings, exact duplicates and (name, type, price) duplicates are
// dropped, Installs and Price are parsed, outliers at or above the price
// ceiling are dropped and the revenue estimate is derived.
func (c *Cleaner) Clean(raw []models.RawApp) (*CleanResult, error) {
	res := &CleanResult{Apps: make([]models.App, 0, len(raw))}

	exact := utils.NewSet[models.RawApp]()
	keys := utils.NewSet[appKey]()

	for i, r := range raw {
		if !r.HasRating {
			res.MissingRating = append(res.MissingRating, r)
			continue
		}

		if !exact.Add(r) {
			res.Duplicates = append(res.Duplicates, r)
			continue
		}

		if !keys.Add(appKey{name: r.Name, typ: r.Type, price: r.Price}) {
			c.logger.Debug("[cleaner] Duplicate listing skipped: %s (%s, %s)", r.Name, r.Type, r.Price)
			continue
		}

		installs, err := parseInstalls(r.Installs)
		if err != nil {
			if err := c.reject(&ParseError{Row: i + 1, App: r.Name, Field: "Installs", Value: r.Installs, Err: err}); err != nil {
				return nil, err
			}
			res.Excluded++
			continue
		}

		price, err := parsePrice(r.Price)
		if err != nil {
			if err := c.reject(&ParseError{Row: i + 1, App: r.Name, Field: "Price", Value: r.Price, Err: err}); err != nil {
				return nil, err
			}
			res.Excluded++
			continue
		}

		if price.GreaterThanOrEqual(c.priceCeiling) {
			c.logger.Debug("[cleaner] Price outlier dropped: %s at $%s", r.Name, price.StringFixed(2))
			res.Outliers++
			continue
		}

		res.Apps = append(res.Apps, models.App{
			Name:            r.Name,
			Category:        r.Category,
			Rating:          r.Rating,
			Reviews:         r.Reviews,
			SizeMBs:         r.SizeMBs,
			Installs:        installs,
			Type:            r.Type,
			Price:           price.InexactFloat64(),
			ContentRating:   r.ContentRating,
			Genres:          r.Genres,
			RevenueEstimate: price.Mul(decimal.NewFromInt(installs)).InexactFloat64(),
		})
	}

	res.UniqueListings = keys.Size()
	c.logger.Info("[cleaner] Cleaned %d → %d apps (missing rating %d, identical %d, same listing %d, unparsable %d, outliers %d)",
		len(raw), len(res.Apps), len(res.MissingRating), len(res.Duplicates),
		exact.Size()-res.UniqueListings, res.Excluded, res.Outliers)
	return res, nil
}

// reject applies the parse policy: nil means the row should be skipped.
func (c *Cleaner) reject(perr *ParseError) error {
	if c.policy == ParseStrict {
		return perr
	}
	c.logger.Warn("[cleaner] Excluding unparsable row: %v", perr)
	return nil
}

// parseInstalls turns "10,000+" into 10000.
func parseInstalls(raw string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.TrimSuffix(s, "+")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative install count %d", n)
	}
	return n, nil
}

// parsePrice turns "$4.99" into 4.99.
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "$", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", d)
	}
	return d, nil
}
