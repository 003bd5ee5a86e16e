// Package export turns domain collections into downloadable CSV.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/metropower/dashboard/internal/domain"
)

// ErrHeterogeneousRecords is returned by ToCSVStrict when a record's fields differ from the header.
var ErrHeterogeneousRecords = errors.New("export: records do not share the header field set")

// Field is one named cell of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered field list. The first record of a collection defines the header.
type Record []Field

// Get returns the value stored under name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// ToCSV renders records as CSV text. A record missing a header field gets an
// empty cell; fields absent from the header are dropped.
func ToCSV(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	header := records[0].Names()

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, rec := range records {
		lines = append(lines, renderRow(header, rec))
	}
	return strings.Join(lines, "\n")
}

// ToCSVStrict is ToCSV that rejects records whose field set differs from the first one.
func ToCSVStrict(records []Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	header := records[0].Names()
	for i, rec := range records[1:] {
		if !sameFields(header, rec) {
			return "", fmt.Errorf("record %d: %w", i+1, ErrHeterogeneousRecords)
		}
	}
	return ToCSV(records), nil
}

func renderRow(header []string, rec Record) string {
	cells := make([]string, len(header))
	for i, name := range header {
		value, _ := rec.Get(name)
		cells[i] = escape(stringify(value))
	}
	return strings.Join(cells, ",")
}

func sameFields(header []string, rec Record) bool {
	if len(header) != len(rec) {
		return false
	}
	for _, name := range header {
		if _, ok := rec.Get(name); !ok {
			return false
		}
	}
	return true
}

func escape(value string) string {
	if !strings.ContainsAny(value, `,"`) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(domain.DateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(domain.DateLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
