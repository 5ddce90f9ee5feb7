package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

func newScheduleService(t *testing.T) (ScheduleService, repos.ScheduleRepo) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Lecture{}, &types.AgendaUnit{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log := logger.NewNop()
	repo := repos.NewScheduleRepo(db, log)
	return NewScheduleService(db, log, repo), repo
}

func TestScheduleService_ListLecturesOrdered(t *testing.T) {
	svc, repo := newScheduleService(t)
	ctx := context.Background()

	later := time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	seed := []*types.Lecture{
		{ID: uuid.New(), Topic: "Probability", StartTime: "11:00", Date: later},
		{ID: uuid.New(), Topic: "Data Structures", StartTime: "10:00", Date: earlier},
	}
	if err := repo.ReplaceLectures(ctx, nil, seed); err != nil {
		t.Fatalf("seed lectures: %v", err)
	}

	lectures, err := svc.ListLectures(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lectures) != 2 {
		t.Fatalf("lectures = %d, want 2", len(lectures))
	}
	if lectures[0].Topic != "Data Structures" {
		t.Fatalf("expected date order, got %q first", lectures[0].Topic)
	}
}

func TestScheduleService_ListAgendaOrdered(t *testing.T) {
	svc, repo := newScheduleService(t)
	ctx := context.Background()

	seed := []*types.AgendaUnit{
		{ID: uuid.New(), UnitNumber: 2, Title: "Aptitude Basics", Status: "Pending"},
		{ID: uuid.New(), UnitNumber: 1, Title: "Orientation", Status: "Pending"},
	}
	if err := repo.ReplaceAgenda(ctx, nil, seed); err != nil {
		t.Fatalf("seed agenda: %v", err)
	}

	units, err := svc.ListAgenda(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}
	if units[0].UnitNumber != 1 || units[0].Title != "Orientation" {
		t.Fatalf("expected unit order, got %+v first", units[0])
	}
}
