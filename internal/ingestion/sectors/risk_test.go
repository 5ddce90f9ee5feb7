package sectors

import (
	"testing"
	"time"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/logger"
)

func TestParsePeriodHeader(t *testing.T) {
	date, parsed := parsePeriodHeader("July 28 - Aug 2", 2025)
	if !parsed {
		t.Fatalf("expected parse")
	}
	want := time.Date(2025, time.July, 28, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, date)
	}

	date, parsed = parsePeriodHeader("Aug", 2025)
	if !parsed || date.Month() != time.August || date.Day() != 1 {
		t.Fatalf("month without day should default to day 1, got %v parsed=%v", date, parsed)
	}

	date, parsed = parsePeriodHeader("Week A", 2025)
	if parsed {
		t.Fatalf("expected fallback for unparsable label")
	}
	if date.Month() != time.January || date.Day() != 1 {
		t.Fatalf("fallback must be January 1 of the reference year, got %v", date)
	}
}

func TestMergeRisk_CurrentOnly(t *testing.T) {
	raw := [][]string{
		{"Name", "RAG Status"},
		{"Asha Rao", "Amber"},
	}
	table := tabular.FromRows(raw, HintsFor("risk"))
	r := resolve.New(logger.NewNop(), nil)
	rows, rejected, facts, err := MergeRisk(table, r, 2025)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if rows != 1 || rejected != 0 || len(facts) != 0 {
		t.Fatalf("unexpected outcome: rows=%d rejected=%d facts=%d", rows, rejected, len(facts))
	}
	if got := r.Touched()[0].Fields()["rag_status"]; got != "Amber" {
		t.Fatalf("expected Amber staged, got %v", got)
	}
}

func TestMergeRisk_HistoryColumns(t *testing.T) {
	raw := [][]string{
		{"Name", "RAG Status", "July 28 - Aug 2", "Aug 4 - Aug 9", "Week 2"},
		{"Asha Rao", "Green", "Red", "Amber", "Green"},
	}
	table := tabular.FromRows(raw, HintsFor("risk"))
	r := resolve.New(logger.NewNop(), nil)
	_, _, facts, err := MergeRisk(table, r, 2025)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("expected 3 history facts, got %d", len(facts))
	}
	if facts[0].PeriodName != "July 28 - Aug 2" || facts[0].Status != "Red" {
		t.Fatalf("unexpected first fact: %+v", facts[0])
	}
	if !facts[0].Parsed {
		t.Fatalf("July header should parse")
	}
	if facts[2].Parsed {
		t.Fatalf("Week 2 must be flagged unparsed")
	}
	if facts[2].PeriodName != "Week 2" {
		t.Fatalf("raw period label must be preserved, got %q", facts[2].PeriodName)
	}
}

func TestMergeRisk_NonPeriodColumnsIgnored(t *testing.T) {
	raw := [][]string{
		{"Name", "Roll No", "Remarks", "RAG Status", "July 28 - Aug 2"},
		{"Asha Rao", "S101", "doing well", "Green", "Amber"},
	}
	table := tabular.FromRows(raw, HintsFor("risk"))
	r := resolve.New(logger.NewNop(), nil)
	_, _, facts, err := MergeRisk(table, r, 2025)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	// Only the month-labeled column is a period; roll numbers and
	// remarks next to the identity column produce no snapshots.
	if len(facts) != 1 {
		t.Fatalf("expected 1 history fact, got %d", len(facts))
	}
	if facts[0].PeriodName != "July 28 - Aug 2" || facts[0].Status != "Amber" {
		t.Fatalf("unexpected fact: %+v", facts[0])
	}
}

func TestMergeRisk_BlankHistoryCellSkipped(t *testing.T) {
	raw := [][]string{
		{"Name", "RAG Status", "July 28 - Aug 2"},
		{"Asha Rao", "Green", ""},
	}
	table := tabular.FromRows(raw, HintsFor("risk"))
	r := resolve.New(logger.NewNop(), nil)
	_, _, facts, err := MergeRisk(table, r, 2025)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("blank cells must not produce facts, got %d", len(facts))
	}
}
