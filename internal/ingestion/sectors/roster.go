package sectors

import (
	"fmt"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/fieldmap"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
)

// MergeRoster resolves each roster row (name plus roll number when
// present) and stages the profile-sector fields onto the entity.
func MergeRoster(t *tabular.Table, r *resolve.Resolver) (rows, rejected int, err error) {
	nameCol := findNameColumn(t)
	if nameCol < 0 {
		return 0, 0, fmt.Errorf("roster sheet has no name column")
	}
	rollCol := findRollColumn(t)

	for i := 0; i < t.NumRows(); i++ {
		name := t.Value(i, nameCol)
		extID := ""
		if rollCol >= 0 {
			extID = normalization.CleanCell(t.Value(i, rollCol))
		}
		staged, ok := r.Resolve(name, extID)
		if !ok {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}
		fieldmap.Roster.Apply(t, i, staged)
		rows++
	}
	return rows, rejected, nil
}

// MergeObservation stages the pre_ or post_ observation sector.
func MergeObservation(t *tabular.Table, r *resolve.Resolver, prefix string) (rows, rejected int, err error) {
	nameCol := findNameColumn(t)
	if nameCol < 0 {
		return 0, 0, fmt.Errorf("%s observation sheet has no name column", prefix)
	}
	m := fieldmap.Observation(prefix)

	for i := 0; i < t.NumRows(); i++ {
		staged, ok := r.Resolve(t.Value(i, nameCol), "")
		if !ok {
			if !rowIsBlank(t, i) {
				rejected++
			}
			continue
		}
		m.Apply(t, i, staged)
		rows++
	}
	return rows, rejected, nil
}
