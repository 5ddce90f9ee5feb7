package classify

import (
	"strings"
)

// Category is the inferred dataset type of one uploaded file.
type Category string

const (
	CategoryRoster          Category = "roster"
	CategoryAssessment      Category = "assessment"
	CategoryAttendance      Category = "attendance"
	CategoryObservationPre  Category = "observation_pre"
	CategoryObservationPost Category = "observation_post"
	CategoryRisk            Category = "risk"
	CategorySchedule        Category = "schedule"
	CategoryAgenda          Category = "agenda"
	CategoryUnrecognized    Category = "unrecognized"
)

// ProcessingOrder fixes the order categories are ingested in within a
// batch. Roster runs first so later stages resolve against entities it
// created.
var ProcessingOrder = []Category{
	CategoryRoster,
	CategoryAssessment,
	CategoryAttendance,
	CategoryObservationPre,
	CategoryObservationPost,
	CategoryRisk,
	CategorySchedule,
	CategoryAgenda,
}

// MinScore is the number of fingerprint keywords a header set must hit
// before a category is assigned. Below it the file is unrecognized.
const MinScore = 2

type fingerprint struct {
	category Category
	keywords []string
}

// Fingerprints are evaluated in declaration order; the first category
// reaching the maximum score wins ties. The order is part of the
// contract, not incidental.
var fingerprints = []fingerprint{
	{CategoryRoster, []string{"roll no", "batch", "phone", "email", "branch", "university", "aadhar", "enrol"}},
	{CategoryAssessment, []string{"technical", "verbal", "logical", "numerical", "maths", "marks", "percentage"}},
	{CategoryAttendance, []string{"week", "day", "present", "absent", "holiday"}},
	{CategoryObservationPre, []string{"pre", "observation", "communication", "engagement", "fluency", "confidence", "subject knowledge"}},
	{CategoryObservationPost, []string{"post", "observation", "communication", "engagement", "fluency", "confidence", "subject knowledge"}},
	{CategoryRisk, []string{"rag", "risk", "red", "amber", "green"}},
	{CategorySchedule, []string{"time", "day", "subject", "classroom", "period", "date"}},
	{CategoryAgenda, []string{"s.no", "topic", "agenda", "unit"}},
}

// FromHeaders assigns a category from column shape alone. Each
// category scores one point per keyword appearing as a substring of at
// least one lowercased header; the best score wins if it clears
// MinScore, otherwise the file is unrecognized.
func FromHeaders(headers []string) Category {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, strings.ToLower(strings.TrimSpace(h)))
	}

	best := CategoryUnrecognized
	maxScore := 0
	for _, fp := range fingerprints {
		score := 0
		for _, kw := range fp.keywords {
			for _, col := range norm {
				if strings.Contains(col, kw) {
					score++
					break
				}
			}
		}
		if score > maxScore && score >= MinScore {
			maxScore = score
			best = fp.category
		}
	}
	return best
}

var filenameHints = []struct {
	fragment string
	category Category
}{
	{"batch info", CategoryRoster},
	{"roster", CategoryRoster},
	{"student info", CategoryRoster},
	{"assessment", CategoryAssessment},
	{"attendance", CategoryAttendance},
	{"pre observation", CategoryObservationPre},
	{"pre-observation", CategoryObservationPre},
	{"post observation", CategoryObservationPost},
	{"post-observation", CategoryObservationPost},
	{"rag", CategoryRisk},
	{"risk", CategoryRisk},
	{"schedule", CategorySchedule},
	{"agenda", CategoryAgenda},
}

// FromFilename matches keyword fragments against the lowercased
// filename. It runs before header classification; unrecognized here
// just means "fall back to FromHeaders".
func FromFilename(filename string) Category {
	name := strings.ToLower(filename)
	for _, hint := range filenameHints {
		if strings.Contains(name, hint.fragment) {
			return hint.category
		}
	}
	return CategoryUnrecognized
}
