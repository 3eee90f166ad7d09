package services

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Required CSV headers. Matching ignores case and surrounding spaces.
const (
	ColumnDate      = "Date"
	ColumnCity      = "City"
	ColumnRegion    = "Region"
	ColumnModel     = "Model"
	ColumnUnitsSold = "Units Sold"
	ColumnRevenue   = "Revenue"
)

var requiredColumns = []string{ColumnDate, ColumnCity, ColumnRegion, ColumnModel, ColumnUnitsSold, ColumnRevenue}

// Fractional seconds are accepted by the time-of-day layouts without an
// explicit .999 element.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// Cell values read as missing, matching the usual CSV NA markers.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// isMissing reports whether a cell is empty or an NA marker. Missing numeric
// cells load as zero: every aggregate is a sum, so a zero contributes exactly
// what a skipped value would.
func isMissing(s string) bool {
	_, ok := missingValues[s]
	return ok
}

// Dataset is the loaded sales table. It is never mutated after construction
// and is safe to share between requests.
type Dataset struct {
	records  []models.SaleRecord
	source   string
	loadedAt time.Time
}

// NewDataset wraps records that were produced in memory.
func NewDataset(records []models.SaleRecord) *Dataset {
	return &Dataset{
		records:  slices.Clone(records),
		source:   "memory",
		loadedAt: time.Now(),
	}
}

// Records returns the table rows. Callers must not modify the slice.
func (d *Dataset) Records() []models.SaleRecord { return d.records }

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) Source() string { return d.source }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

type rawRow struct {
	line   int
	fields []string
}

// LoadDataset reads the CSV at path. A missing file, a missing required
// column or any row that does not parse yields a LOAD_ERROR. A nil logger
// falls back to slog.Default.
func LoadDataset(ctx context.Context, path string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Load(err, fmt.Sprintf("open %s", path))
	}
	defer file.Close()

	records, err := readSales(ctx, file)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, errors.Load(err, fmt.Sprintf("parse %s", path))
	}

	duration := time.Since(start)
	logger.InfoContext(ctx, "csv processing complete",
		"file", path,
		"records", len(records),
		"duration", duration,
	)

	return &Dataset{
		records:  records,
		source:   path,
		loadedAt: time.Now(),
	}, nil
}

func readSales(ctx context.Context, r io.Reader) ([]models.SaleRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Load(err, "empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []rawRow
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rawRow{line: line, fields: fields})
	}

	return parseRows(ctx, rows, columns)
}

// parseRows converts rows in parallel batches. Output order matches input.
func parseRows(ctx context.Context, rows []rawRow, columns map[string]int) ([]models.SaleRecord, error) {
	records := make([]models.SaleRecord, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rec, err := parseSale(rows[i].fields, columns)
				if err != nil {
					return fmt.Errorf("line %d: %w", rows[i].line, err)
				}
				records[i] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		i, ok := index[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		columns[col] = i
	}

	if len(missing) > 0 {
		return nil, errors.Load(nil, "missing required columns: "+strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseSale(fields []string, columns map[string]int) (models.SaleRecord, error) {
	get := func(col string) (string, error) {
		i := columns[col]
		if i >= len(fields) {
			return "", fmt.Errorf("missing %s value", col)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	rawDate, err := get(ColumnDate)
	if err != nil {
		return models.SaleRecord{}, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return models.SaleRecord{}, err
	}

	city, err := get(ColumnCity)
	if err != nil {
		return models.SaleRecord{}, err
	}
	region, err := get(ColumnRegion)
	if err != nil {
		return models.SaleRecord{}, err
	}
	model, err := get(ColumnModel)
	if err != nil {
		return models.SaleRecord{}, err
	}

	rawUnits, err := get(ColumnUnitsSold)
	if err != nil {
		return models.SaleRecord{}, err
	}
	units, err := parseUnits(rawUnits)
	if err != nil {
		return models.SaleRecord{}, err
	}

	rawRevenue, err := get(ColumnRevenue)
	if err != nil {
		return models.SaleRecord{}, err
	}
	revenue, err := parseRevenue(rawRevenue)
	if err != nil {
		return models.SaleRecord{}, err
	}

	return models.SaleRecord{
		Date:      date,
		City:      city,
		Region:    region,
		Model:     model,
		UnitsSold: units,
		Revenue:   revenue,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseUnits accepts integers and integral floats such as "12.0".
func parseUnits(s string) (int64, error) {
	if isMissing(s) {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid units sold %q", s)
	}
	return int64(f), nil
}

func parseRevenue(s string) (float64, error) {
	if isMissing(s) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid revenue %q", s)
	}
	return f, nil
}
