package classify

import (
	"testing"
)

func TestFromHeaders_Roster(t *testing.T) {
	headers := []string{"Name", "College Roll no/ University Roll no.", "Email Address", "Branch", "Batch"}
	if got := FromHeaders(headers); got != CategoryRoster {
		t.Fatalf("expected roster, got %s", got)
	}
}

func TestFromHeaders_Assessment(t *testing.T) {
	headers := []string{"Name", "Technical", "Verbal", "Maths/Numerical", "Logical Leasoning"}
	if got := FromHeaders(headers); got != CategoryAssessment {
		t.Fatalf("expected assessment, got %s", got)
	}
}

func TestFromHeaders_SingleKeywordIsUnrecognized(t *testing.T) {
	// "technical" alone scores 1 for assessment; threshold is 2.
	headers := []string{"Technical", "Foo", "Bar"}
	if got := FromHeaders(headers); got != CategoryUnrecognized {
		t.Fatalf("expected unrecognized, got %s", got)
	}
}

func TestFromHeaders_EmptyHeaders(t *testing.T) {
	if got := FromHeaders(nil); got != CategoryUnrecognized {
		t.Fatalf("expected unrecognized, got %s", got)
	}
}

func TestFromHeaders_TieBreakIsDeclarationOrder(t *testing.T) {
	// Pre and post observation fingerprints share their generic
	// keywords; the pre category is declared first and must win.
	headers := []string{"Name", "Communication", "Engagement", "Fluency", "Confidence"}
	if got := FromHeaders(headers); got != CategoryObservationPre {
		t.Fatalf("expected observation_pre on tie, got %s", got)
	}
}

func TestFromHeaders_PostObservation(t *testing.T) {
	headers := []string{"Name", "Post Communication", "Post Engagement"}
	// "post" pushes the post fingerprint above the pre fingerprint.
	if got := FromHeaders(headers); got != CategoryObservationPost {
		t.Fatalf("expected observation_post, got %s", got)
	}
}

func TestFromFilename(t *testing.T) {
	cases := map[string]Category{
		"student batch info.csv.xlsx": CategoryRoster,
		"assessment.xlsx":             CategoryAssessment,
		"attendance sheet.xlsx":       CategoryAttendance,
		"pre observation.csv.xlsx":    CategoryObservationPre,
		"post observation.csv.xlsx":   CategoryObservationPost,
		"rag analysis.csv.xlsx":       CategoryRisk,
		"schedule.csv.xlsx":           CategorySchedule,
		"Agenda.csv.xlsx":             CategoryAgenda,
		"mystery.xlsx":                CategoryUnrecognized,
	}
	for name, want := range cases {
		if got := FromFilename(name); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}
}
