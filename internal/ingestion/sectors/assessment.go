package sectors

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/fieldmap"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/normalization"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// maxSubScore is the ceiling of each of the four assessment sub-scores;
// round percentage is total out of 4*maxSubScore.
const maxSubScore = 100.0

// assessmentBlock maps one repeated column block to its column indexes.
type assessmentBlock struct {
	label   string
	name    int
	tech    int
	verbal  int
	math    int
	logical int
}

// MergeAssessment handles sheets that lay several rounds of the same
// test side by side. One pass produces both outputs: a round fact per
// (entity, block) and per-field accumulators that collapse into the
// entity's current scores after the sheet is exhausted.
func MergeAssessment(t *tabular.Table, r *resolve.Resolver) (rows, rejected int, facts []types.AssessmentRound, err error) {
	blocks := detectBlocks(t)
	if len(blocks) == 0 {
		return 0, 0, nil, fmt.Errorf("assessment sheet has no recognizable column blocks")
	}

	for i := 0; i < t.NumRows(); i++ {
		rowUsed := false
		for _, b := range blocks {
			name := t.Value(i, b.name)
			staged, ok := r.Resolve(name, "")
			if !ok {
				continue
			}
			tech := scoreCell(t, i, b.tech)
			verbal := scoreCell(t, i, b.verbal)
			mathScore := scoreCell(t, i, b.math)
			logical := scoreCell(t, i, b.logical)

			total := tech + verbal + mathScore + logical
			pct := math.Round(total/(4*maxSubScore)*1000) / 10

			facts = append(facts, types.AssessmentRound{
				ID:             uuid.New(),
				StudentID:      staged.StudentID,
				RoundLabel:     b.label,
				TechnicalScore: tech,
				VerbalScore:    verbal,
				MathScore:      mathScore,
				LogicScore:     logical,
				TotalScore:     total,
				Percentage:     pct,
			})

			staged.Accumulate("dsa_score", tech)
			staged.Accumulate("mock_interview_score", verbal)
			staged.Accumulate("ml_score", mathScore)
			staged.Accumulate("qa_score", logical)
			rowUsed = true
		}
		if rowUsed {
			rows++
		} else if !rowIsBlank(t, i) {
			rejected++
		}
	}

	for _, staged := range r.Touched() {
		staged.CollapseAccumulators()
	}
	return rows, rejected, facts, nil
}

func scoreCell(t *tabular.Table, row, col int) float64 {
	v, ok := fieldmap.ParseFloatCell(normalization.CleanCell(t.Value(row, col)))
	if !ok {
		return 0
	}
	return v
}

// detectBlocks finds the repeated Name/Technical/Verbal/Maths/Logical
// groups. Deduplicated headers carry .1/.2 suffixes, so block k is the
// set of columns sharing suffix ".k".
func detectBlocks(t *tabular.Table) []assessmentBlock {
	var blocks []assessmentBlock
	for k := 0; ; k++ {
		name := columnForBlock(t, "name", k)
		if name < 0 {
			break
		}
		b := assessmentBlock{
			label:   fmt.Sprintf("Assessment %d", k+1),
			name:    name,
			tech:    columnForBlock(t, "technical", k),
			verbal:  columnForBlock(t, "verbal", k),
			math:    mathColumnForBlock(t, k),
			logical: columnForBlock(t, "logical", k),
		}
		if b.tech < 0 && b.verbal < 0 && b.math < 0 && b.logical < 0 {
			break
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func mathColumnForBlock(t *tabular.Table, block int) int {
	if col := columnForBlock(t, "maths", block); col >= 0 {
		return col
	}
	return columnForBlock(t, "numerical", block)
}

// columnForBlock matches fragment within block k: block 0 headers have
// no ".N" suffix, block k>0 headers end in ".k".
func columnForBlock(t *tabular.Table, fragment string, block int) int {
	suffix := ""
	if block > 0 {
		suffix = fmt.Sprintf(".%d", block)
	}
	for i, h := range t.Headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(lower, "unnamed") || !strings.Contains(lower, fragment) {
			continue
		}
		if block == 0 {
			if !hasBlockSuffix(lower) {
				return i
			}
			continue
		}
		if strings.HasSuffix(lower, suffix) {
			return i
		}
	}
	return -1
}

func hasBlockSuffix(header string) bool {
	dot := strings.LastIndexByte(header, '.')
	if dot < 0 || dot == len(header)-1 {
		return false
	}
	for _, r := range header[dot+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
