package sectors

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// attendanceStatus maps a recognized cell code to present/absent.
// Unrecognized codes (holidays, dashes) skip the cell entirely so they
// neither count toward the percentage nor produce a fact.
func attendanceStatus(cell string) (string, bool) {
	switch strings.ToUpper(normalization.CleanCell(cell)) {
	case "P", "PRESENT", "L", "LATE", "E", "EXCUSED":
		return types.AttendancePresent, true
	case "A", "ABSENT", "LEAVE":
		return types.AttendanceAbsent, true
	default:
		return "", false
	}
}

// MergeAttendance decodes a day-of-month grid against the reference
// month. Per entity it stages the integer attendance percentage and
// emits one fact per recognized (entity, date) cell.
func MergeAttendance(t *tabular.Table, r *resolve.Resolver, refYear int, refMonth time.Month) (rows, rejected int, facts []types.AttendanceLog, err error) {
	nameCol := findNameColumn(t)
	if nameCol < 0 {
		return 0, 0, nil, fmt.Errorf("attendance sheet has no name column")
	}

	type dayColumn struct {
		col int
		day int
	}
	var days []dayColumn
	for col := nameCol + 1; col < len(t.Headers); col++ {
		if d, ok := tabular.ParseDayNumber(t.Headers[col]); ok && d >= 1 && d <= 31 {
			days = append(days, dayColumn{col: col, day: d})
		}
	}
	if len(days) == 0 {
		return 0, 0, nil, fmt.Errorf("attendance sheet has no day columns")
	}

	for i := 0; i < t.NumRows(); i++ {
		staged, ok := r.Resolve(t.Value(i, nameCol), "")
		if !ok {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}

		present, total := 0, 0
		for _, dc := range days {
			status, recognized := attendanceStatus(t.Value(i, dc.col))
			if !recognized {
				continue
			}
			facts = append(facts, types.AttendanceLog{
				ID:        uuid.New(),
				StudentID: staged.StudentID,
				Date:      time.Date(refYear, refMonth, dc.day, 0, 0, 0, 0, time.UTC),
				Status:    status,
			})
			if status == types.AttendancePresent {
				present++
			}
			total++
		}
		if total > 0 {
			staged.Set("attendance", int(math.Round(float64(present)/float64(total)*100)))
		}
		rows++
	}
	return rows, rejected, facts, nil
}
