package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV source yields no usable observations.
var ErrNoData = errors.New("no valid data found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for periods (optional)
	ValueColumn string // Column name for demand values (default: auto-detect)
	IDColumn    string // Column name for the item identifier (optional)
	IDFilter    string // Keep only rows whose ID column equals this value
	DateFormat  string // Date format tried first (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

var (
	valueHeaders = map[string]bool{"y": true, "value": true, "qty": true, "quantity": true, "demand": true, "sales": true}
	dateHeaders  = map[string]bool{"ds": true, "date": true, "period": true, "month": true, "timestamp": true}
	idHeaders    = map[string]bool{"unique_id": true, "id": true, "sku": true, "item": true}
	dateFormats  = []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05", "2006-01", "2006/01/02", "01/02/2006"}
)

// LoadCSV loads a demand series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVFromReader loads a demand series from an io.Reader.
//
// Rows whose value is empty or NA are skipped. Timestamps are kept only when
// every kept row has a parseable date.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	valueIdx, dateIdx, idIdx := 1, 0, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		valueIdx, dateIdx, idIdx = resolveColumns(header, opts)
		if valueIdx == -1 {
			return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
	}

	var (
		values     []float64
		timestamps []time.Time
		datesOK    = dateIdx >= 0
		row        int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if opts.IDFilter != "" && idIdx >= 0 && idIdx < len(record) {
			if clean(record[idIdx]) != opts.IDFilter {
				continue
			}
		}
		if valueIdx >= len(record) {
			continue
		}

		raw := clean(record[valueIdx])
		if isMissing(raw) {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse value %q: %w", row, raw, err)
		}
		values = append(values, val)

		if datesOK {
			ts, ok := parseDate(record, dateIdx, opts.DateFormat)
			if ok {
				timestamps = append(timestamps, ts)
			} else {
				datesOK = false
			}
		}
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	s := &Series{Values: values, Name: opts.IDFilter}
	if datesOK && len(timestamps) == len(values) {
		s.Timestamps = timestamps
	}
	return s, nil
}

// resolveColumns maps header names to value, date and ID column indices.
func resolveColumns(header []string, opts *CSVOptions) (valueIdx, dateIdx, idIdx int) {
	valueIdx, dateIdx, idIdx = -1, -1, -1
	for i, h := range header {
		h = clean(h)
		lower := strings.ToLower(h)
		switch {
		case opts.ValueColumn != "" && h == opts.ValueColumn:
			valueIdx = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.IDColumn != "" && h == opts.IDColumn:
			idIdx = i
		case opts.ValueColumn == "" && valueIdx == -1 && valueHeaders[lower]:
			valueIdx = i
		case opts.DateColumn == "" && dateIdx == -1 && dateHeaders[lower]:
			dateIdx = i
		case opts.IDColumn == "" && idIdx == -1 && idHeaders[lower]:
			idIdx = i
		}
	}
	if valueIdx == -1 && opts.ValueColumn == "" {
		valueIdx = len(header) - 1
	}
	return valueIdx, dateIdx, idIdx
}

func parseDate(record []string, idx int, preferred string) (time.Time, bool) {
	if idx >= len(record) {
		return time.Time{}, false
	}
	s := clean(record[idx])
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, f := range dateFormats {
		if ts, err := time.Parse(f, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

// WriteCSV writes a series as period,value,outlier rows. Rows whose index is
// in flagged get outlier=1. The period column holds the timestamp when the
// series has one, otherwise the 1-based position.
func WriteCSV(w io.Writer, series *Series, flagged []int) error {
	marks := make(map[int]bool, len(flagged))
	for _, i := range flagged {
		marks[i] = true
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "value", "outlier"}); err != nil {
		return err
	}
	for i, v := range series.Values {
		period := strconv.Itoa(i + 1)
		if series.HasTimestamps() {
			period = series.Timestamps[i].Format("2006-01-02")
		}
		outlier := "0"
		if marks[i] {
			outlier = "1"
		}
		if err := cw.Write([]string{period, strconv.FormatFloat(v, 'f', -1, 64), outlier}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
