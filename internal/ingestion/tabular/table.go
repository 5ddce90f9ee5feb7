package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is one decoded sheet: an ordered header row plus data rows,
// all cells kept as raw text. Type coercion happens later, per field.
type Table struct {
	Headers []string
	Rows    [][]string
}

// HeaderHints drive header-row detection for sheets that put a title
// banner above the real header row. A row qualifies as the header when
// one cell contains an identity keyword and another cell contains a
// sector keyword.
type HeaderHints struct {
	Identity []string
	Sector   []string
	// DayGrid accepts a row as the header when, besides an identity
	// keyword, it carries several bare day-of-month numbers. Attendance
	// grids have no sector keyword to latch onto.
	DayGrid bool
}

// DefaultHints cover the common roster/assessment/observation shapes.
var DefaultHints = HeaderHints{
	Identity: []string{"name", "roll"},
	Sector:   []string{"technical", "score", "status", "communication", "email", "branch", "week", "rag", "observation"},
}

// headerScanLimit bounds how deep into a sheet the header row is
// searched for before falling back to row 0.
const headerScanLimit = 6

// Decode picks a reader from the file extension and builds a Table.
func Decode(filename string, data []byte, hints HeaderHints) (*Table, error) {
	lower := strings.ToLower(filename)
	var raw [][]string
	var err error
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		raw, err = decodeExcel(data)
	case strings.HasSuffix(lower, ".csv"):
		raw, err = decodeCSV(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	return FromRows(raw, hints), nil
}

func decodeCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return rows, nil
}

func decodeExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// FromRows locates the header row, sanitizes and deduplicates the
// headers and returns everything below as data rows. Rows shorter than
// the header are padded so column lookups stay in bounds.
func FromRows(raw [][]string, hints HeaderHints) *Table {
	if len(raw) == 0 {
		return &Table{}
	}
	headerRow := DetectHeaderRow(raw, hints)
	headers := dedupeHeaders(sanitizeHeaders(raw[headerRow]))

	rows := make([][]string, 0, len(raw)-headerRow-1)
	for _, r := range raw[headerRow+1:] {
		row := make([]string, len(headers))
		copy(row, r)
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

// DetectHeaderRow scans the first few rows for the combination of an
// identity keyword and a sector keyword, defaulting to row 0. Title
// banners above the real header never contain both.
func DetectHeaderRow(raw [][]string, hints HeaderHints) int {
	identity := hints.Identity
	sector := hints.Sector
	if len(identity) == 0 {
		identity = DefaultHints.Identity
	}
	if len(sector) == 0 {
		sector = DefaultHints.Sector
	}

	limit := headerScanLimit
	if len(raw) < limit {
		limit = len(raw)
	}
	for i := 0; i < limit; i++ {
		if !rowHasKeyword(raw[i], identity) {
			continue
		}
		if rowHasKeyword(raw[i], sector) {
			return i
		}
		if hints.DayGrid && countDayCells(raw[i]) >= 3 {
			return i
		}
	}
	return 0
}

func countDayCells(row []string) int {
	count := 0
	for _, cell := range row {
		if d, ok := ParseDayNumber(cell); ok && d >= 1 && d <= 31 {
			count++
		}
	}
	return count
}

// ParseDayNumber accepts "3" and excel-flavored "3.0".
func ParseDayNumber(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		if strings.Trim(s[dot+1:], "0") != "" {
			return 0, false
		}
		s = s[:dot]
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return 0, false
	}
	return n, true
}

func rowHasKeyword(row []string, keywords []string) bool {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

func sanitizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		clean := strings.TrimSpace(h)
		if clean == "" {
			clean = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = clean
	}
	return out
}

// dedupeHeaders disambiguates repeated headers the way pandas does:
// Name, Name.1, Name.2. Block-repeated assessment sheets rely on this.
func dedupeHeaders(headers []string) []string {
	seen := map[string]int{}
	out := make([]string, len(headers))
	for i, h := range headers {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			out[i] = h
			continue
		}
		out[i] = fmt.Sprintf("%s.%d", h, n)
	}
	return out
}

// ColumnIndex returns the first column whose header contains fragment
// (case-insensitive), or -1.
func (t *Table) ColumnIndex(fragment string) int {
	lower := strings.ToLower(fragment)
	for i, h := range t.Headers {
		if strings.Contains(strings.ToLower(h), lower) {
			return i
		}
	}
	return -1
}

// Value returns the raw cell at (row, col), "" when out of bounds.
func (t *Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}
