package resolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// Staged is one entity touched by the current batch: either an
// existing student or one allocated mid-batch. Field assignments and
// score accumulators live here until the commit coordinator flushes
// them; nothing is global, the whole structure dies with the batch.
type Staged struct {
	StudentID string
	Name      string
	exists    bool
	tracked   bool
	fields    map[string]any
	agg       map[string][]float64
}

// Set stages one column assignment. Later writes win, matching the
// last-write-in-batch rule for conflicting uploads.
func (s *Staged) Set(column string, value any) {
	if s.fields == nil {
		s.fields = map[string]any{}
	}
	s.fields[column] = value
}

// IsNew reports whether the entity was allocated in this batch.
func (s *Staged) IsNew() bool { return !s.exists }

// Fields returns the staged column assignments (nil when untouched).
func (s *Staged) Fields() map[string]any { return s.fields }

// Accumulate appends one per-block numeric value for column.
func (s *Staged) Accumulate(column string, value float64) {
	if s.agg == nil {
		s.agg = map[string][]float64{}
	}
	s.agg[column] = append(s.agg[column], value)
}

// CollapseAccumulators averages every accumulated list into a rounded
// integer and stages it, then drops the accumulators.
func (s *Staged) CollapseAccumulators() {
	for column, values := range s.agg {
		if len(values) == 0 {
			continue
		}
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		s.Set(column, int(math.Round(sum/float64(len(values)))))
	}
	s.agg = nil
}

// Resolver maps (name, external id) pairs to entity handles for one
// ingestion batch. Lookups hit staged allocations first so repeats
// resolve identically before anything is committed.
type Resolver struct {
	log     *logger.Logger
	byID    map[string]*Staged
	byName  map[string]*Staged
	touched []*Staged
	nextSeq int
}

// New seeds the resolver with every committed student.
func New(log *logger.Logger, existing []types.Student) *Resolver {
	r := &Resolver{
		log:    log.With("component", "resolver"),
		byID:   make(map[string]*Staged, len(existing)),
		byName: make(map[string]*Staged, len(existing)),
	}
	for _, st := range existing {
		s := &Staged{StudentID: st.StudentID, Name: st.Name, exists: true}
		r.byID[st.StudentID] = s
		if key, ok := normalization.CleanName(st.Name); ok {
			r.byName[key] = s
		}
	}
	r.nextSeq = len(existing)
	return r
}

// Resolve finds or allocates the entity a row refers to. ok is false
// when the row carries neither a usable name nor an external
// identifier and must be rejected.
//
// Precedence: external identifier match, then normalized-name match,
// then allocation. A name that matches an entity holding a different
// external identifier loses to the supplied identifier: the row is
// treated as a distinct entity keyed by its identifier, and the
// collision is logged.
func (r *Resolver) Resolve(rawName, externalID string) (*Staged, bool) {
	nameKey, nameOK := normalization.CleanName(rawName)
	extID := strings.TrimSpace(externalID)

	if !nameOK && extID == "" {
		return nil, false
	}

	if extID != "" {
		if s, found := r.byID[extID]; found {
			r.track(s)
			return s, true
		}
	}

	if nameOK {
		if s, found := r.byName[nameKey]; found {
			if extID == "" || s.StudentID == extID {
				r.track(s)
				return s, true
			}
			r.log.Warn("external identifier collides with name match, identifier wins",
				"external_id", extID, "matched_id", s.StudentID)
		}
	}

	return r.allocate(rawName, nameKey, nameOK, extID), true
}

func (r *Resolver) allocate(rawName, nameKey string, nameOK bool, extID string) *Staged {
	id := extID
	if id == "" {
		for {
			r.nextSeq++
			id = fmt.Sprintf("S%d", r.nextSeq)
			if _, taken := r.byID[id]; !taken {
				break
			}
		}
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		name = id
	}
	s := &Staged{StudentID: id, Name: name}
	r.byID[id] = s
	if nameOK {
		if _, taken := r.byName[nameKey]; !taken {
			r.byName[nameKey] = s
		}
	}
	r.track(s)
	return s
}

func (r *Resolver) track(s *Staged) {
	if s.tracked {
		return
	}
	s.tracked = true
	r.touched = append(r.touched, s)
}

// Touched returns every entity resolved this batch, in first-sighting
// order. The commit coordinator walks it to flush creations before
// updates and facts.
func (r *Resolver) Touched() []*Staged {
	return r.touched
}
