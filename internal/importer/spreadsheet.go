// Package importer reads legacy assignment rosters from Excel workbooks.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/metropower/dashboard/internal/domain"
)

const maxXLSRows = 100000

var (
	// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .xls.
	ErrUnsupportedFormat = errors.New("importer: unsupported file type")
	// ErrEmptySheet is returned when the first worksheet has no header row.
	ErrEmptySheet = errors.New("importer: worksheet is empty")
)

// Row is one usable roster line.
type Row struct {
	Line          int
	EmployeeID    string
	EmployeeName  string
	Position      string
	ProjectName   string
	ProjectNumber string
	Date          string
	Notes         string
}

// Sheet holds the rows read from a workbook.
type Sheet struct {
	Rows []Row
	// Skipped counts data lines missing an employee, project or readable date.
	Skipped int
}

type column int

const (
	colEmployeeID column = iota
	colEmployeeName
	colPosition
	colProjectName
	colProjectNumber
	colDate
	colNotes
	columnCount
)

var headerAliases = map[string]column{
	"employee id":     colEmployeeID,
	"employee_id":     colEmployeeID,
	"emp id":          colEmployeeID,
	"employee":        colEmployeeName,
	"employee name":   colEmployeeName,
	"name":            colEmployeeName,
	"position":        colPosition,
	"title":           colPosition,
	"project":         colProjectName,
	"project name":    colProjectName,
	"job":             colProjectName,
	"project number":  colProjectNumber,
	"project #":       colProjectNumber,
	"job number":      colProjectNumber,
	"date":            colDate,
	"assignment date": colDate,
	"notes":           colNotes,
	"note":            colNotes,
}

var dateLayouts = []string{
	domain.DateLayout,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
}

// Parse reads the first worksheet of an .xlsx or .xls file.
func Parse(filename string, r io.Reader) (*Sheet, error) {
	rows, err := readRows(filename, r)
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func readRows(filename string, r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("open xls: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, ErrEmptySheet
		}
		return workbook.ReadAllCells(maxXLSRows), nil
	case ".xlsx", ".xlsm":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open xlsx: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, ErrEmptySheet
		}
		return file.GetRows(sheetName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func parseRows(rows [][]string) (*Sheet, error) {
	headerIdx := -1
	var index [columnCount]int
	for i, row := range rows {
		if idx, ok := mapHeader(row); ok {
			headerIdx, index = i, idx
			break
		}
	}
	if headerIdx < 0 {
		if len(rows) == 0 {
			return nil, ErrEmptySheet
		}
		return nil, domain.Invalid("file", "header row needs employee, project and date columns")
	}

	sheet := &Sheet{}
	for i := headerIdx + 1; i < len(rows); i++ {
		raw := rows[i]
		if blank(raw) {
			continue
		}
		row := Row{
			Line:          i + 1,
			EmployeeID:    cellValue(raw, index[colEmployeeID]),
			EmployeeName:  NormalizeName(cellValue(raw, index[colEmployeeName])),
			Position:      cellValue(raw, index[colPosition]),
			ProjectName:   cellValue(raw, index[colProjectName]),
			ProjectNumber: cellValue(raw, index[colProjectNumber]),
			Notes:         cellValue(raw, index[colNotes]),
		}
		date, ok := NormalizeDate(cellValue(raw, index[colDate]))
		if !ok || (row.EmployeeName == "" && row.EmployeeID == "") || (row.ProjectName == "" && row.ProjectNumber == "") {
			sheet.Skipped++
			continue
		}
		row.Date = date
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func mapHeader(row []string) ([columnCount]int, bool) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}
	for i, cell := range row {
		col, ok := headerAliases[normalizeHeader(cell)]
		if ok && index[col] < 0 {
			index[col] = i
		}
	}
	hasEmployee := index[colEmployeeName] >= 0 || index[colEmployeeID] >= 0
	hasProject := index[colProjectName] >= 0 || index[colProjectNumber] >= 0
	return index, hasEmployee && hasProject && index[colDate] >= 0
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NormalizeName turns "Last, First" into "First Last" and collapses whitespace.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	last, first, found := strings.Cut(name, ",")
	if !found {
		return name
	}
	last, first = strings.TrimSpace(last), strings.TrimSpace(first)
	if first == "" || last == "" {
		return strings.Trim(name, ", ")
	}
	return first + " " + last
}

// NormalizeDate accepts ISO, US and named-month dates as well as Excel serials.
func NormalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		// Serial 36526 is 2000-01-01 and 73051 is 2100-01-01.
		if serial >= 36526 && serial < 73051 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed.Format(domain.DateLayout), true
			}
		}
		return "", false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(domain.DateLayout), true
		}
	}
	return "", false
}
