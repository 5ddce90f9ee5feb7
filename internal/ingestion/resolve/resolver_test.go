package resolve

import (
	"testing"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

func newTestResolver(existing ...types.Student) *Resolver {
	return New(logger.NewNop(), existing)
}

func TestResolve_ExternalIDMatch(t *testing.T) {
	r := newTestResolver(types.Student{StudentID: "S1", Name: "Asha Rao"})
	s, ok := r.Resolve("completely different", "S1")
	if !ok || s.StudentID != "S1" {
		t.Fatalf("expected S1 via external id, got %+v ok=%v", s, ok)
	}
	if s.IsNew() {
		t.Fatalf("existing entity must not be marked new")
	}
}

func TestResolve_NameMatchWhenNoID(t *testing.T) {
	r := newTestResolver(types.Student{StudentID: "S1", Name: "Asha Rao"})
	s, ok := r.Resolve("  asha   RAO ", "")
	if !ok || s.StudentID != "S1" {
		t.Fatalf("expected S1 via normalized name, got %+v ok=%v", s, ok)
	}
}

func TestResolve_AllocatesPlaceholderID(t *testing.T) {
	r := newTestResolver(types.Student{StudentID: "S1", Name: "Asha Rao"})
	s, ok := r.Resolve("Binod Kumar", "")
	if !ok {
		t.Fatalf("expected allocation")
	}
	if s.StudentID != "S2" {
		t.Fatalf("expected placeholder S2, got %s", s.StudentID)
	}
	if !s.IsNew() {
		t.Fatalf("allocated entity must be new")
	}
}

func TestResolve_WithinBatchStability(t *testing.T) {
	r := newTestResolver()
	a, ok := r.Resolve("Asha Rao", "S1")
	if !ok {
		t.Fatalf("expected allocation")
	}
	b, ok := r.Resolve("asha rao", "")
	if !ok {
		t.Fatalf("expected resolution")
	}
	if a != b {
		t.Fatalf("same normalized name must return the same handle pre-commit")
	}
	if len(r.Touched()) != 1 {
		t.Fatalf("expected one touched entity, got %d", len(r.Touched()))
	}
}

func TestResolve_ExternalIDWinsOverNameCollision(t *testing.T) {
	r := newTestResolver()
	a, _ := r.Resolve("Asha Rao", "S1")
	b, _ := r.Resolve("Asha Rao", "S2")
	if a == b {
		t.Fatalf("conflicting external ids must not merge")
	}
	if b.StudentID != "S2" {
		t.Fatalf("expected supplied identifier to win, got %s", b.StudentID)
	}
	// The name key keeps pointing at the first claimant.
	c, _ := r.Resolve("Asha Rao", "")
	if c != a {
		t.Fatalf("name lookup should still find the first entity")
	}
}

func TestResolve_RejectsAnonymousRow(t *testing.T) {
	r := newTestResolver()
	if _, ok := r.Resolve("nan", ""); ok {
		t.Fatalf("row without identity must be rejected")
	}
	if _, ok := r.Resolve("", "   "); ok {
		t.Fatalf("row without identity must be rejected")
	}
}

func TestResolve_PlaceholderSkipsTakenIDs(t *testing.T) {
	r := newTestResolver(
		types.Student{StudentID: "S1", Name: "A One"},
		types.Student{StudentID: "S3", Name: "A Three"},
	)
	s, _ := r.Resolve("New Person", "")
	if s.StudentID != "S3" && s.StudentID != "S4" {
		// seq starts at len(existing); S3 is taken so S4 is next free.
		t.Fatalf("unexpected placeholder %s", s.StudentID)
	}
	if _, taken := map[string]bool{"S1": true, "S3": true}[s.StudentID]; taken {
		t.Fatalf("allocated an already-taken id %s", s.StudentID)
	}
}

func TestCollapseAccumulators_RoundedMean(t *testing.T) {
	s := &Staged{StudentID: "S1", Name: "Asha Rao"}
	for _, v := range []float64{70, 80, 90} {
		s.Accumulate("dsa_score", v)
	}
	s.CollapseAccumulators()
	if got := s.Fields()["dsa_score"]; got != 80 {
		t.Fatalf("expected mean 80, got %v", got)
	}
}

func TestSet_LastWriteWins(t *testing.T) {
	s := &Staged{StudentID: "S1", Name: "Asha Rao"}
	s.Set("branch", "CSE")
	s.Set("branch", "ECE")
	if got := s.Fields()["branch"]; got != "ECE" {
		t.Fatalf("expected last write to win, got %v", got)
	}
}
