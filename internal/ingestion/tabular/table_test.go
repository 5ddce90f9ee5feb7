package tabular

import (
	"testing"
)

func TestFromRows_BannerRowSkipped(t *testing.T) {
	raw := [][]string{
		{"Assessment Results Q3", "", "", ""},
		{"Name", "Technical", "Verbal", "Score"},
		{"Asha Rao", "70", "80", "150"},
	}
	table := FromRows(raw, HeaderHints{})
	if len(table.Headers) != 4 || table.Headers[0] != "Name" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if table.NumRows() != 1 {
		t.Fatalf("expected 1 data row, got %d", table.NumRows())
	}
	if table.Value(0, 1) != "70" {
		t.Fatalf("unexpected cell: %q", table.Value(0, 1))
	}
}

func TestFromRows_NoBannerDefaultsToRowZero(t *testing.T) {
	raw := [][]string{
		{"Topic", "S.No."},
		{"Linked Lists", "1"},
	}
	table := FromRows(raw, HeaderHints{})
	if table.Headers[0] != "Topic" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if table.NumRows() != 1 {
		t.Fatalf("expected 1 data row, got %d", table.NumRows())
	}
}

func TestFromRows_DayGridDetection(t *testing.T) {
	raw := [][]string{
		{"Attendance Sheet", "", "", ""},
		{"Batch 1", "", "", ""},
		{"", "", "", ""},
		{"Name", "1", "2", "3"},
		{"Asha Rao", "P", "A", "P"},
	}
	table := FromRows(raw, HeaderHints{Identity: []string{"name"}, DayGrid: true})
	if table.Headers[0] != "Name" || table.Headers[1] != "1" {
		t.Fatalf("day grid header not detected: %v", table.Headers)
	}
	if table.NumRows() != 1 {
		t.Fatalf("expected 1 data row, got %d", table.NumRows())
	}
}

func TestFromRows_DeduplicatesRepeatedHeaders(t *testing.T) {
	raw := [][]string{
		{"Name", "Technical", "Name", "Technical", "Name", "Technical"},
	}
	table := FromRows(raw, HeaderHints{})
	want := []string{"Name", "Technical", "Name.1", "Technical.1", "Name.2", "Technical.2"}
	for i, w := range want {
		if table.Headers[i] != w {
			t.Fatalf("header %d: expected %q, got %q", i, w, table.Headers[i])
		}
	}
}

func TestDecode_CSV(t *testing.T) {
	data := []byte("Name,Technical,Score\nAsha Rao,70,150\n")
	table, err := Decode("assessment.csv", data, HeaderHints{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if table.NumRows() != 1 || table.Value(0, 0) != "Asha Rao" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestDecode_RejectsUnknownExtension(t *testing.T) {
	if _, err := Decode("data.pdf", []byte("x"), HeaderHints{}); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestColumnIndex_SubstringCaseInsensitive(t *testing.T) {
	table := &Table{Headers: []string{"Student Name", "RAG Status"}}
	if got := table.ColumnIndex("rag"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := table.ColumnIndex("missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestParseDayNumber(t *testing.T) {
	if d, ok := ParseDayNumber("14"); !ok || d != 14 {
		t.Fatalf("expected 14, got %d ok=%v", d, ok)
	}
	if d, ok := ParseDayNumber("3.0"); !ok || d != 3 {
		t.Fatalf("expected 3, got %d ok=%v", d, ok)
	}
	if _, ok := ParseDayNumber("P"); ok {
		t.Fatalf("expected not a day number")
	}
	if _, ok := ParseDayNumber("3.5"); ok {
		t.Fatalf("expected not a day number")
	}
}

func TestFromRows_ShortRowsPadded(t *testing.T) {
	raw := [][]string{
		{"Name", "Technical", "Verbal"},
		{"Asha Rao"},
	}
	table := FromRows(raw, HeaderHints{})
	if got := table.Value(0, 2); got != "" {
		t.Fatalf("expected padded empty cell, got %q", got)
	}
}
