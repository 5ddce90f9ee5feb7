package fieldmap

import (
	"testing"
	"time"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
)

type captureSetter struct {
	isNew  bool
	staged map[string]any
}

func (c *captureSetter) Set(column string, value any) {
	if c.staged == nil {
		c.staged = map[string]any{}
	}
	c.staged[column] = value
}

func (c *captureSetter) IsNew() bool { return c.isNew }

func TestValidateAll(t *testing.T) {
	if err := ValidateAll(); err != nil {
		t.Fatalf("registered maps must validate: %v", err)
	}
}

func TestValidate_RejectsDuplicateColumns(t *testing.T) {
	m := Map{Name: "bad", Fields: []Field{
		{Column: "x", Matchers: []string{"a"}},
		{Column: "x", Matchers: []string{"b"}},
	}}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

func TestValidate_RejectsEmptyMatchers(t *testing.T) {
	m := Map{Name: "bad", Fields: []Field{{Column: "x"}}}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected empty matcher error")
	}
}

func TestApply_MissingHeaderLeavesFieldUnstaged(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Name", "Email Address"},
		Rows:    [][]string{{"Asha Rao", "asha@example.com"}},
	}
	dst := &captureSetter{isNew: false}
	Roster.Apply(table, 0, dst)
	if got := dst.staged["email"]; got != "asha@example.com" {
		t.Fatalf("expected email staged, got %v", got)
	}
	if _, staged := dst.staged["branch"]; staged {
		t.Fatalf("branch header absent, must not be staged")
	}
}

func TestApply_BlankNumericDefaultsOnlyForNewEntities(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Name", "Communication"},
		Rows:    [][]string{{"Asha Rao", ""}},
	}

	existing := &captureSetter{isNew: false}
	Observation("pre").Apply(table, 0, existing)
	if _, staged := existing.staged["pre_communication"]; staged {
		t.Fatalf("blank cell must leave prior value for existing entity")
	}

	fresh := &captureSetter{isNew: true}
	Observation("pre").Apply(table, 0, fresh)
	if got := fresh.staged["pre_communication"]; got != 0.0 {
		t.Fatalf("expected 0.0 default for new entity, got %v", got)
	}
}

func TestApply_HeaderVariantSpellings(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Name", "Subject Knowledge ", "STATUS"},
		Rows:    [][]string{{"Asha Rao", "4.5", "Improving"}},
	}
	dst := &captureSetter{isNew: false}
	Observation("post").Apply(table, 0, dst)
	if got := dst.staged["post_subject_knowledge"]; got != 4.5 {
		t.Fatalf("expected 4.5, got %v", got)
	}
	if got := dst.staged["post_status"]; got != "Improving" {
		t.Fatalf("expected status staged, got %v", got)
	}
}

func TestParseIntCell(t *testing.T) {
	if v, ok := ParseIntCell("85.0"); !ok || v != 85 {
		t.Fatalf("expected 85, got %d ok=%v", v, ok)
	}
	if _, ok := ParseIntCell("abc"); ok {
		t.Fatalf("expected failure for non-numeric")
	}
	if _, ok := ParseIntCell(""); ok {
		t.Fatalf("expected failure for blank")
	}
}

func TestParseDateCell(t *testing.T) {
	v, ok := ParseDateCell("2025-01-15")
	if !ok {
		t.Fatalf("expected parse")
	}
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !v.Equal(want) {
		t.Fatalf("expected %v, got %v", want, v)
	}
	if _, ok := ParseDateCell("soon"); ok {
		t.Fatalf("expected failure")
	}
}
