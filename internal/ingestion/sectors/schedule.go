package sectors

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/fieldmap"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// ParseSchedule flattens a date-by-timeslot grid into one Lecture per
// filled cell. Schedule ingestion is a sector-wide refresh, so the
// coordinator replaces the whole lectures table with this output.
func ParseSchedule(t *tabular.Table) ([]types.Lecture, int, error) {
	dateCol := t.ColumnIndex("date")
	if dateCol < 0 {
		return nil, 0, fmt.Errorf("schedule sheet has no date column")
	}

	var slotCols []int
	for col, header := range t.Headers {
		lower := strings.ToLower(header)
		if col == dateCol || strings.Contains(lower, "day") || strings.Contains(lower, "unnamed") {
			continue
		}
		slotCols = append(slotCols, col)
	}

	var lectures []types.Lecture
	rejected := 0
	for i := 0; i < t.NumRows(); i++ {
		date, ok := fieldmap.ParseDateCell(normalization.CleanCell(t.Value(i, dateCol)))
		if !ok {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}
		for _, col := range slotCols {
			topic := normalization.CleanCell(t.Value(i, col))
			if topic == "" {
				continue
			}
			slot := strings.TrimSpace(t.Headers[col])
			start, end := slot, ""
			if dash := strings.Index(slot, "-"); dash >= 0 {
				start = strings.TrimSpace(slot[:dash])
				end = strings.TrimSpace(slot[dash+1:])
			}
			lectures = append(lectures, types.Lecture{
				ID:        uuid.New(),
				Batch:     "Batch 1",
				Subject:   "General",
				Topic:     topic,
				Room:      "Online",
				StartTime: start,
				EndTime:   end,
				Date:      date,
			})
		}
	}
	return lectures, rejected, nil
}

// ParseAgenda converts an agenda sheet into syllabus units, also a
// sector-wide refresh.
func ParseAgenda(t *tabular.Table) ([]types.AgendaUnit, int, error) {
	topicCol := t.ColumnIndex("topic")
	if topicCol < 0 {
		return nil, 0, fmt.Errorf("agenda sheet has no topic column")
	}
	numCol := t.ColumnIndex("s.no")
	if numCol < 0 {
		numCol = t.ColumnIndex("sno")
	}

	var units []types.AgendaUnit
	rejected := 0
	for i := 0; i < t.NumRows(); i++ {
		topic := normalization.CleanCell(t.Value(i, topicCol))
		if topic == "" {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}
		number := i + 1
		if numCol >= 0 {
			if n, ok := fieldmap.ParseIntCell(normalization.CleanCell(t.Value(i, numCol))); ok {
				number = n
			}
		}
		units = append(units, types.AgendaUnit{
			ID:         uuid.New(),
			UnitNumber: number,
			Title:      topic,
			Status:     "Pending",
			Progress:   0,
		})
	}
	return units, rejected, nil
}
