package sectors

import (
	"testing"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
)

func TestParseSchedule(t *testing.T) {
	raw := [][]string{
		{"Date", "Day", "10:00 - 11:00", "11:00 - 12:00"},
		{"2025-01-06", "Monday", "Arrays", ""},
		{"2025-01-07", "Tuesday", "Linked Lists", "Stacks"},
		{"not a date", "Wednesday", "Queues", ""},
	}
	table := tabular.FromRows(raw, HintsFor("schedule"))
	lectures, rejected, err := ParseSchedule(table)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(lectures) != 3 {
		t.Fatalf("expected 3 lectures, got %d", len(lectures))
	}
	if rejected != 1 {
		t.Fatalf("undated row should be rejected, got %d", rejected)
	}
	first := lectures[0]
	if first.Topic != "Arrays" || first.StartTime != "10:00" || first.EndTime != "11:00" {
		t.Fatalf("unexpected lecture: %+v", first)
	}
}

func TestParseAgenda(t *testing.T) {
	raw := [][]string{
		{"Course Agenda", ""},
		{"S.No.", "Topic"},
		{"1", "Foundations"},
		{"2", "Data Structures"},
		{"", ""},
	}
	table := tabular.FromRows(raw, HintsFor("agenda"))
	units, rejected, err := ParseAgenda(table)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(units) != 2 || rejected != 0 {
		t.Fatalf("expected 2 units 0 rejected, got %d/%d", len(units), rejected)
	}
	if units[1].UnitNumber != 2 || units[1].Title != "Data Structures" {
		t.Fatalf("unexpected unit: %+v", units[1])
	}
}

func TestParseAgenda_BannerRowDetected(t *testing.T) {
	table := tabular.FromRows([][]string{
		{"Sprint Plan", ""},
		{"S.No.", "Topic"},
		{"1", "Kickoff"},
	}, HintsFor("agenda"))
	if table.Headers[0] != "S.No." {
		t.Fatalf("agenda banner not skipped: %v", table.Headers)
	}
}
