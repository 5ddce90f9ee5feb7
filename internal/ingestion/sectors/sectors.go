// Package sectors turns classified tables into staged entity field
// assignments and time-series facts, one merger per dataset category.
// Each merger only ever writes its own sector's columns; that is what
// keeps batch updates surgical.
package sectors

import (
	"strings"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/classify"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
)

// HintsFor returns the header-row detection hints for a category.
// Detection runs before classification is final, so the pipeline calls
// this again whenever a file is reclassified.
func HintsFor(category classify.Category) tabular.HeaderHints {
	switch category {
	case classify.CategoryRoster:
		return tabular.HeaderHints{
			Identity: []string{"name", "roll"},
			Sector:   []string{"email", "branch", "batch", "phone", "university"},
		}
	case classify.CategoryAssessment:
		return tabular.HeaderHints{
			Identity: []string{"name", "roll"},
			Sector:   []string{"technical", "verbal", "maths", "numerical", "logical", "score"},
		}
	case classify.CategoryAttendance:
		return tabular.HeaderHints{
			Identity: []string{"name", "roll"},
			DayGrid:  true,
		}
	case classify.CategoryObservationPre, classify.CategoryObservationPost:
		return tabular.HeaderHints{
			Identity: []string{"name", "roll"},
			Sector:   []string{"communication", "engagement", "fluency", "confidence", "score", "status"},
		}
	case classify.CategoryRisk:
		return tabular.HeaderHints{
			Identity: []string{"name", "roll"},
			Sector:   []string{"rag", "risk", "status"},
		}
	case classify.CategorySchedule:
		return tabular.HeaderHints{
			Identity: []string{"date"},
			Sector:   []string{"day"},
		}
	case classify.CategoryAgenda:
		return tabular.HeaderHints{
			Identity: []string{"topic"},
			Sector:   []string{"s.no", "sno", "unit"},
		}
	default:
		return tabular.DefaultHints
	}
}

// findNameColumn locates the identity column, ignoring the
// "Unnamed: N" placeholders blank headers sanitize into.
func findNameColumn(t *tabular.Table) int {
	for i, h := range t.Headers {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "unnamed") {
			continue
		}
		if strings.Contains(lower, "name") {
			return i
		}
	}
	return -1
}

// findRollColumn locates the external-identifier column, if any.
func findRollColumn(t *tabular.Table) int {
	return t.ColumnIndex("roll")
}

// rowIsBlank reports whether every cell of the row cleans to "".
// Blank trailing rows are skipped silently; non-blank rows without a
// usable identity count against rejected_rows.
func rowIsBlank(t *tabular.Table, row int) bool {
	for col := range t.Headers {
		if normalization.CleanCell(t.Value(row, col)) != "" {
			return false
		}
	}
	return true
}
