package sectors

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/fieldmap"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// parsePeriodHeader extracts a best-effort date from a period label
// like "July 28 - Aug 2": the first month name and the day number
// following it. parsed is false when the label yields nothing and the
// caller must fall back to the reference-year sentinel.
func parsePeriodHeader(header string, refYear int) (time.Time, bool) {
	tokens := strings.FieldsFunc(strings.ToLower(header), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for i, tok := range tokens {
		month, found := monthsByName[tok]
		if !found {
			continue
		}
		day := 1
		if i+1 < len(tokens) {
			if d, ok := tabular.ParseDayNumber(tokens[i+1]); ok && d >= 1 && d <= 31 {
				day = d
			}
		}
		return time.Date(refYear, month, day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Date(refYear, time.January, 1, 0, 0, 0, 0, time.UTC), false
}

func looksLikePeriodHeader(header string) bool {
	for _, r := range header {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	for _, tok := range strings.FieldsFunc(strings.ToLower(header), func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if _, found := monthsByName[tok]; found {
			return true
		}
	}
	return false
}

// MergeRisk stages the current risk color and converts any
// period-labeled history columns into immutable snapshot facts. The
// source sheet is a complete matrix, so history is replaced wholesale
// per (entities, periods) window by the coordinator.
func MergeRisk(t *tabular.Table, r *resolve.Resolver, refYear int) (rows, rejected int, facts []types.RiskLog, err error) {
	nameCol := findNameColumn(t)
	if nameCol < 0 {
		return 0, 0, nil, fmt.Errorf("risk sheet has no name column")
	}
	currentCol := t.ColumnIndex("rag")
	if currentCol < 0 {
		currentCol = t.ColumnIndex("risk")
	}

	// A historical snapshot column must carry a month token or a digit
	// in its header ("July 28 - Aug 2", "Week 2"); anything else next to
	// the identity column (roll numbers, remarks) is not a period.
	type periodColumn struct {
		col    int
		label  string
		date   time.Time
		parsed bool
	}
	var periods []periodColumn
	for col, header := range t.Headers {
		if col == nameCol || col == currentCol {
			continue
		}
		if strings.Contains(strings.ToLower(header), "unnamed") {
			continue
		}
		if !looksLikePeriodHeader(header) {
			continue
		}
		date, parsed := parsePeriodHeader(header, refYear)
		periods = append(periods, periodColumn{col: col, label: strings.TrimSpace(header), date: date, parsed: parsed})
	}

	for i := 0; i < t.NumRows(); i++ {
		staged, ok := r.Resolve(t.Value(i, nameCol), "")
		if !ok {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}
		if currentCol >= 0 {
			fieldmap.Risk.Apply(t, i, staged)
		}
		for _, p := range periods {
			status := normalization.CleanCell(t.Value(i, p.col))
			if status == "" {
				continue
			}
			facts = append(facts, types.RiskLog{
				ID:         uuid.New(),
				StudentID:  staged.StudentID,
				Date:       p.date,
				Status:     status,
				PeriodName: p.label,
				Parsed:     p.parsed,
			})
		}
		rows++
	}
	return rows, rejected, facts, nil
}
