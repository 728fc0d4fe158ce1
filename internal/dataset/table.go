package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMissingColumn = errors.New("missing required column")

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// table is a header-indexed view over a CSV file.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required ...string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.ReuseRecord = false
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	t := &table{path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		t.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("%s: %q: %w", path, name, ErrMissingColumn)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t.rows = rows

	return t, nil
}

// cell returns the trimmed value of column name in row i, or "" when the
// column is absent or the row is short.
func (t *table) cell(i int, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][idx])
}

// line is the 1-based file line of data row i.
func (t *table) line(i int) int {
	return i + 2
}

func (t *table) errorf(i int, name, format string, args ...any) error {
	return fmt.Errorf("%s:%d: column %s: %s", t.path, t.line(i), name, fmt.Sprintf(format, args...))
}

func (t *table) decimal(i int, name string) (decimal.Decimal, error) {
	v := t.cell(i, name)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, t.errorf(i, name, "invalid number %q", v)
	}
	return d, nil
}

// int accepts integral floats like "3.0", which pandas writes for
// integer columns that once held missing values.
func (t *table) int(i int, name string) (int, error) {
	v := t.cell(i, name)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, t.errorf(i, name, "invalid integer %q", v)
	}
	return int(f), nil
}

func (t *table) timestamp(i int, name string) (time.Time, error) {
	v := t.cell(i, name)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, t.errorf(i, name, "invalid timestamp %q", v)
}

func (t *table) required(i int, name string) (string, error) {
	v := t.cell(i, name)
	if v == "" {
		return "", t.errorf(i, name, "empty value")
	}
	return v, nil
}
