package fieldmap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
)

// Kind is the coercion target of a mapped field.
type Kind int

const (
	Int Kind = iota
	Float
	Text
	Date
)

// Field binds one semantic entity column to the header spellings that
// may carry it across upload vintages.
type Field struct {
	Column   string
	Matchers []string
	Kind     Kind
}

// Map is the declared sector field list of one dataset category. A
// field whose header is absent from a given file is never staged, so
// uploads only touch the columns they actually carry.
type Map struct {
	Name   string
	Fields []Field
}

// Roster covers the profile sector merged from batch-info sheets.
var Roster = Map{
	Name: "roster",
	Fields: []Field{
		{Column: "email", Matchers: []string{"email"}, Kind: Text},
		{Column: "batch_id", Matchers: []string{"batch"}, Kind: Text},
		{Column: "branch", Matchers: []string{"branch"}, Kind: Text},
		{Column: "year", Matchers: []string{"year"}, Kind: Text},
		{Column: "identity_proof", Matchers: []string{"aadhar", "pan", "identity proof"}, Kind: Text},
		{Column: "start_date", Matchers: []string{"start date", "joining date"}, Kind: Date},
		{Column: "end_date", Matchers: []string{"end date", "completion date"}, Kind: Date},
	},
}

// Observation builds the pre_ or post_ observation sector map.
func Observation(prefix string) Map {
	col := func(field string) string { return prefix + "_" + field }
	return Map{
		Name: prefix + " observation",
		Fields: []Field{
			{Column: col("communication"), Matchers: []string{"communication"}, Kind: Float},
			{Column: col("engagement"), Matchers: []string{"engagement"}, Kind: Float},
			{Column: col("subject_knowledge"), Matchers: []string{"subject knowledge"}, Kind: Float},
			{Column: col("confidence"), Matchers: []string{"confidence"}, Kind: Float},
			{Column: col("fluency"), Matchers: []string{"fluency"}, Kind: Float},
			{Column: col("score"), Matchers: []string{"score"}, Kind: Float},
			{Column: col("remarks"), Matchers: []string{"remark"}, Kind: Text},
			{Column: col("status"), Matchers: []string{"status"}, Kind: Text},
		},
	}
}

// Risk covers the current risk color merged from RAG sheets.
var Risk = Map{
	Name: "risk",
	Fields: []Field{
		{Column: "rag_status", Matchers: []string{"rag", "risk status"}, Kind: Text},
	},
}

// All registered maps, validated once at startup.
func All() []Map {
	return []Map{Roster, Observation("pre"), Observation("post"), Risk}
}

// ValidateAll checks every registered map for empty matchers and
// duplicate target columns so a bad declaration fails fast instead of
// silently merging nothing.
func ValidateAll() error {
	for _, m := range All() {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (m Map) Validate() error {
	seen := map[string]struct{}{}
	for _, f := range m.Fields {
		if f.Column == "" {
			return fmt.Errorf("field map %s: field with empty column", m.Name)
		}
		if len(f.Matchers) == 0 {
			return fmt.Errorf("field map %s: field %s has no matchers", m.Name, f.Column)
		}
		for _, matcher := range f.Matchers {
			if strings.TrimSpace(matcher) == "" {
				return fmt.Errorf("field map %s: field %s has a blank matcher", m.Name, f.Column)
			}
		}
		if _, dup := seen[f.Column]; dup {
			return fmt.Errorf("field map %s: duplicate target column %s", m.Name, f.Column)
		}
		seen[f.Column] = struct{}{}
	}
	return nil
}

// Setter receives staged column assignments for one entity.
type Setter interface {
	Set(column string, value any)
	IsNew() bool
}

// Apply stages every declared field found in the row. Missing headers
// leave the entity untouched; blank or unparsable cells coerce to the
// kind's default only when the entity is brand new.
func (m Map) Apply(t *tabular.Table, row int, dst Setter) {
	for _, f := range m.Fields {
		col := -1
		for _, matcher := range f.Matchers {
			if col = t.ColumnIndex(matcher); col >= 0 {
				break
			}
		}
		if col < 0 {
			continue
		}
		cell := normalization.CleanCell(t.Value(row, col))
		switch f.Kind {
		case Int:
			if v, ok := ParseIntCell(cell); ok {
				dst.Set(f.Column, v)
			} else if dst.IsNew() {
				dst.Set(f.Column, 0)
			}
		case Float:
			if v, ok := ParseFloatCell(cell); ok {
				dst.Set(f.Column, v)
			} else if dst.IsNew() {
				dst.Set(f.Column, 0.0)
			}
		case Date:
			if v, ok := ParseDateCell(cell); ok {
				dst.Set(f.Column, v)
			}
		default:
			if cell != "" {
				dst.Set(f.Column, cell)
			}
		}
	}
}

// ParseIntCell coerces "85", "85.0" and padded variants; spreadsheet
// exports routinely float-ify integer columns.
func ParseIntCell(cell string) (int, bool) {
	f, ok := ParseFloatCell(cell)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func ParseFloatCell(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

func ParseDateCell(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
