// Package record holds the rows loaded from a dataset and prints them.
package record

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals printed for coordinate columns.
const DefaultPrecision = 5

// Header describes the columns of a dataset.
type Header struct {
	Names     []string
	KeyIndex  int
	Coords    map[int]bool
	Precision int
}

// Record is a single dataset row. Fields are aligned with Header.Names.
type Record struct {
	Fields []string
}

// NewHeader builds a header keyed on keyColumn. Coordinate columns that do
// not exist in names are ignored.
func NewHeader(names []string, keyColumn string, coordColumns []string, precision int) (*Header, error) {
	keyIndex := indexOf(names, keyColumn)
	if keyIndex < 0 {
		return nil, fmt.Errorf("key column %q not found in header", keyColumn)
	}
	if precision < 0 {
		precision = DefaultPrecision
	}

	coords := make(map[int]bool, len(coordColumns))
	for _, col := range coordColumns {
		if i := indexOf(names, col); i >= 0 {
			coords[i] = true
		}
	}

	return &Header{
		Names:     names,
		KeyIndex:  keyIndex,
		Coords:    coords,
		Precision: precision,
	}, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return i
		}
	}
	return -1
}

// NewRecord aligns fields to the header: short rows are padded with empty
// fields and extra trailing fields are dropped.
func (h *Header) NewRecord(fields []string) *Record {
	out := make([]string, len(h.Names))
	copy(out, fields)
	return &Record{Fields: out}
}

// Key returns the record's lookup key.
func (h *Header) Key(r *Record) string {
	if h.KeyIndex >= len(r.Fields) {
		return ""
	}
	return r.Fields[h.KeyIndex]
}

// Format writes r as a single line:
//
//	--> name: value || name: value || ...
//
// Coordinate columns are rounded to the header's precision; values that do not
// parse as numbers are written unchanged.
func (h *Header) Format(w io.Writer, r *Record) error {
	var sb strings.Builder
	sb.WriteString("--> ")
	for i, name := range h.Names {
		sb.WriteString(name)
		sb.WriteString(": ")

		var val string
		if i < len(r.Fields) {
			val = r.Fields[i]
		}
		if h.Coords[i] {
			val = roundCoordinate(val, h.Precision)
		}
		sb.WriteString(val)
		sb.WriteString(" || ")
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// Map returns the record as column name → value.
func (h *Header) Map(r *Record) map[string]string {
	m := make(map[string]string, len(h.Names))
	for i, name := range h.Names {
		if i < len(r.Fields) {
			m[name] = r.Fields[i]
		}
	}
	return m
}

func roundCoordinate(s string, precision int) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
