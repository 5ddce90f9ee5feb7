// Package pipeline is the ingestion commit coordinator: it classifies
// a batch of uploaded files, runs the sector mergers in a fixed
// category order inside one transaction and flushes staged entities
// before any fact rows so foreign keys are durable. Any persistence
// error rolls the whole batch back.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/classify"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/resolve"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/sectors"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/tabular"
	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// SourceFile is one uploaded spreadsheet, already read into memory.
type SourceFile struct {
	Filename string
	Data     []byte
}

// Config carries the batch-level reference period. Attendance grids
// and risk history columns only name days and months; the reference
// period supplies the rest of the date.
type Config struct {
	RefYear  int
	RefMonth time.Month
}

// Failure records one file that could not be ingested. Failures do not
// abort the batch unless persistence itself errors.
type Failure struct {
	Filename string `json:"filename"`
	Category string `json:"category"`
	Cause    string `json:"cause"`
}

// BatchSummary is the caller-facing outcome of one ingestion batch.
// RejectedRows is the batch-wide total; the per-category breakdown
// rides alongside it.
type BatchSummary struct {
	Status              string         `json:"status"`
	CategoriesProcessed []string       `json:"categories_processed"`
	RowsPerCategory     map[string]int `json:"rows_per_category"`
	RejectedRows        int            `json:"rejected_rows"`
	RejectedByCategory  map[string]int `json:"rejected_rows_per_category"`
	Failures            []Failure      `json:"failures,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
)

type Pipeline struct {
	db          *gorm.DB
	log         *logger.Logger
	students    repos.StudentRepo
	attendance  repos.AttendanceRepo
	assessments repos.AssessmentRepo
	risks       repos.RiskRepo
	schedules   repos.ScheduleRepo
	datasets    repos.DatasetRepo
	cfg         Config
}

func New(
	db *gorm.DB,
	baseLog *logger.Logger,
	students repos.StudentRepo,
	attendance repos.AttendanceRepo,
	assessments repos.AssessmentRepo,
	risks repos.RiskRepo,
	schedules repos.ScheduleRepo,
	datasets repos.DatasetRepo,
	cfg Config,
) *Pipeline {
	return &Pipeline{
		db:          db,
		log:         baseLog.With("component", "pipeline"),
		students:    students,
		attendance:  attendance,
		assessments: assessments,
		risks:       risks,
		schedules:   schedules,
		datasets:    datasets,
		cfg:         cfg,
	}
}

// classified is one file that survived classification and decoding.
type classified struct {
	file     SourceFile
	category classify.Category
	table    *tabular.Table
}

// Run ingests one batch. Classification and merge failures are
// reported per file and the rest of the batch proceeds; any database
// error rolls back everything and is returned.
func (p *Pipeline) Run(ctx context.Context, files []SourceFile) (*BatchSummary, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	summary := &BatchSummary{
		RowsPerCategory:    map[string]int{},
		RejectedByCategory: map[string]int{},
	}

	byCategory := map[classify.Category][]classified{}
	for _, f := range files {
		c, err := p.classifyFile(f)
		if err != nil {
			p.log.Warn("file rejected", "filename", f.Filename, "error", err)
			summary.Failures = append(summary.Failures, Failure{
				Filename: f.Filename,
				Category: string(classify.CategoryUnrecognized),
				Cause:    err.Error(),
			})
			continue
		}
		byCategory[c.category] = append(byCategory[c.category], c)
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		existing, err := p.students.GetAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("load students: %w", err)
		}
		r := resolve.New(p.log, existing)

		var (
			attendanceFacts []types.AttendanceLog
			assessmentFacts []types.AssessmentRound
			riskFacts       []types.RiskLog
			lectures        []types.Lecture
			agenda          []types.AgendaUnit
		)

		for _, category := range classify.ProcessingOrder {
			for _, c := range byCategory[category] {
				rows, rejected, err := p.mergeFile(c, r,
					&attendanceFacts, &assessmentFacts, &riskFacts, &lectures, &agenda)
				if err != nil {
					p.log.Warn("file rejected", "filename", c.file.Filename, "category", category, "error", err)
					summary.Failures = append(summary.Failures, Failure{
						Filename: c.file.Filename,
						Category: string(category),
						Cause:    err.Error(),
					})
					continue
				}
				if !contains(summary.CategoriesProcessed, string(category)) {
					summary.CategoriesProcessed = append(summary.CategoriesProcessed, string(category))
				}
				summary.RowsPerCategory[string(category)] += rows
				summary.RejectedRows += rejected
				summary.RejectedByCategory[string(category)] += rejected

				if err := p.recordUpload(ctx, tx, c, rows, rejected); err != nil {
					return fmt.Errorf("%s: record upload: %w", category, err)
				}
			}
		}

		if err := p.flushEntities(ctx, tx, r); err != nil {
			return err
		}
		if err := p.flushAttendance(ctx, tx, attendanceFacts); err != nil {
			return fmt.Errorf("attendance: %w", err)
		}
		if err := p.flushAssessments(ctx, tx, assessmentFacts); err != nil {
			return fmt.Errorf("assessment: %w", err)
		}
		if err := p.flushRisk(ctx, tx, riskFacts); err != nil {
			return fmt.Errorf("risk: %w", err)
		}
		if lectures != nil {
			if err := p.schedules.ReplaceLectures(ctx, tx, toPointers(lectures)); err != nil {
				return fmt.Errorf("schedule: %w", err)
			}
		}
		if agenda != nil {
			if err := p.schedules.ReplaceAgenda(ctx, tx, toPointers(agenda)); err != nil {
				return fmt.Errorf("agenda: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Status = StatusSuccess
	if len(summary.Failures) > 0 {
		summary.Status = StatusPartial
	}
	p.log.Info("batch committed",
		"categories", summary.CategoriesProcessed,
		"failures", len(summary.Failures))
	return summary, nil
}

// classifyFile decides the category, preferring the filename hint, and
// decodes the sheet with that category's header-detection hints. A
// file only named vaguely gets a generic decode first, then its
// headers pick the category and the sheet is re-decoded with the
// category's own hints.
func (p *Pipeline) classifyFile(f SourceFile) (classified, error) {
	category := classify.FromFilename(f.Filename)
	if category != classify.CategoryUnrecognized {
		t, err := tabular.Decode(f.Filename, f.Data, sectors.HintsFor(category))
		if err != nil {
			return classified{}, err
		}
		return classified{file: f, category: category, table: t}, nil
	}

	t, err := tabular.Decode(f.Filename, f.Data, tabular.DefaultHints)
	if err != nil {
		return classified{}, err
	}
	category = classify.FromHeaders(t.Headers)
	if category == classify.CategoryUnrecognized {
		return classified{}, fmt.Errorf("unrecognized dataset")
	}
	t, err = tabular.Decode(f.Filename, f.Data, sectors.HintsFor(category))
	if err != nil {
		return classified{}, err
	}
	return classified{file: f, category: category, table: t}, nil
}

func (p *Pipeline) mergeFile(
	c classified,
	r *resolve.Resolver,
	attendanceFacts *[]types.AttendanceLog,
	assessmentFacts *[]types.AssessmentRound,
	riskFacts *[]types.RiskLog,
	lectures *[]types.Lecture,
	agenda *[]types.AgendaUnit,
) (rows, rejected int, err error) {
	switch c.category {
	case classify.CategoryRoster:
		return sectors.MergeRoster(c.table, r)
	case classify.CategoryAssessment:
		var facts []types.AssessmentRound
		rows, rejected, facts, err = sectors.MergeAssessment(c.table, r)
		*assessmentFacts = append(*assessmentFacts, facts...)
		return rows, rejected, err
	case classify.CategoryAttendance:
		var facts []types.AttendanceLog
		rows, rejected, facts, err = sectors.MergeAttendance(c.table, r, p.cfg.RefYear, p.cfg.RefMonth)
		*attendanceFacts = append(*attendanceFacts, facts...)
		return rows, rejected, err
	case classify.CategoryObservationPre:
		return sectors.MergeObservation(c.table, r, "pre")
	case classify.CategoryObservationPost:
		return sectors.MergeObservation(c.table, r, "post")
	case classify.CategoryRisk:
		var facts []types.RiskLog
		rows, rejected, facts, err = sectors.MergeRisk(c.table, r, p.cfg.RefYear)
		*riskFacts = append(*riskFacts, facts...)
		return rows, rejected, err
	case classify.CategorySchedule:
		parsed, rejected, err := sectors.ParseSchedule(c.table)
		if err != nil {
			return 0, 0, err
		}
		if *lectures == nil {
			*lectures = []types.Lecture{}
		}
		*lectures = append(*lectures, parsed...)
		return len(parsed), rejected, nil
	case classify.CategoryAgenda:
		parsed, rejected, err := sectors.ParseAgenda(c.table)
		if err != nil {
			return 0, 0, err
		}
		if *agenda == nil {
			*agenda = []types.AgendaUnit{}
		}
		*agenda = append(*agenda, parsed...)
		return len(parsed), rejected, nil
	default:
		return 0, 0, fmt.Errorf("unrecognized dataset")
	}
}

// flushEntities creates batch-allocated students first, then applies
// every staged field map as a surgical column update. Columns never
// staged keep their committed values.
func (p *Pipeline) flushEntities(ctx context.Context, tx *gorm.DB, r *resolve.Resolver) error {
	var created []*types.Student
	for _, staged := range r.Touched() {
		staged.CollapseAccumulators()
		if staged.IsNew() {
			created = append(created, &types.Student{
				StudentID: staged.StudentID,
				Name:      staged.Name,
				RAGStatus: "Green",
			})
		}
	}
	if err := p.students.Create(ctx, tx, created); err != nil {
		return fmt.Errorf("create students: %w", err)
	}
	for _, staged := range r.Touched() {
		fields := staged.Fields()
		if len(fields) == 0 {
			continue
		}
		if err := p.students.UpdateFields(ctx, tx, staged.StudentID, fields); err != nil {
			return fmt.Errorf("update student %s: %w", staged.StudentID, err)
		}
	}
	return nil
}

// flushAttendance replaces the (students x dates) window the batch
// covers: facts for those keys are deleted, then the fresh rows are
// inserted. Facts outside the window survive untouched. Staged facts
// sharing a (student, date) key across same-category files collapse to
// the last one merged, keeping one fact per key.
func (p *Pipeline) flushAttendance(ctx context.Context, tx *gorm.DB, facts []types.AttendanceLog) error {
	if len(facts) == 0 {
		return nil
	}
	facts = dedupeFacts(facts, func(f types.AttendanceLog) string {
		return f.StudentID + "\x00" + f.Date.Format("2006-01-02")
	})
	ids := map[string]struct{}{}
	dates := map[time.Time]struct{}{}
	for _, f := range facts {
		ids[f.StudentID] = struct{}{}
		dates[f.Date] = struct{}{}
	}
	if err := p.attendance.DeleteByStudentDates(ctx, tx, keysOf(ids), timeKeysOf(dates)); err != nil {
		return err
	}
	return p.attendance.Create(ctx, tx, toPointers(facts))
}

func (p *Pipeline) flushAssessments(ctx context.Context, tx *gorm.DB, facts []types.AssessmentRound) error {
	if len(facts) == 0 {
		return nil
	}
	facts = dedupeFacts(facts, func(f types.AssessmentRound) string {
		return f.StudentID + "\x00" + f.RoundLabel
	})
	ids := map[string]struct{}{}
	labels := map[string]struct{}{}
	for _, f := range facts {
		ids[f.StudentID] = struct{}{}
		labels[f.RoundLabel] = struct{}{}
	}
	if err := p.assessments.DeleteByStudentRounds(ctx, tx, keysOf(ids), keysOf(labels)); err != nil {
		return err
	}
	return p.assessments.Create(ctx, tx, toPointers(facts))
}

func (p *Pipeline) flushRisk(ctx context.Context, tx *gorm.DB, facts []types.RiskLog) error {
	if len(facts) == 0 {
		return nil
	}
	facts = dedupeFacts(facts, func(f types.RiskLog) string {
		return f.StudentID + "\x00" + f.PeriodName
	})
	ids := map[string]struct{}{}
	periods := map[string]struct{}{}
	for _, f := range facts {
		ids[f.StudentID] = struct{}{}
		periods[f.PeriodName] = struct{}{}
	}
	if err := p.risks.DeleteByStudentPeriods(ctx, tx, keysOf(ids), keysOf(periods)); err != nil {
		return err
	}
	return p.risks.Create(ctx, tx, toPointers(facts))
}

// dedupeFacts collapses facts sharing a key to the last staged one,
// preserving first-sighting order. Files merge in processing order, so
// last staged means latest file.
func dedupeFacts[T any](facts []T, keyOf func(T) string) []T {
	index := map[string]int{}
	out := make([]T, 0, len(facts))
	for _, f := range facts {
		key := keyOf(f)
		if at, seen := index[key]; seen {
			out[at] = f
			continue
		}
		index[key] = len(out)
		out = append(out, f)
	}
	return out
}

// recordUpload appends the immutable audit record plus the sanitized
// raw rows for one accepted file.
func (p *Pipeline) recordUpload(ctx context.Context, tx *gorm.DB, c classified, rows, rejected int) error {
	upload := &types.DatasetUpload{
		ID:               uuid.New(),
		Category:         string(c.category),
		StorageTable:     fmt.Sprintf("%s_%s", c.category, time.Now().UTC().Format("20060102_150405")),
		OriginalFilename: c.file.Filename,
		RowCount:         rows,
		RejectedRows:     rejected,
		Status:           StatusSuccess,
		UploadedAt:       time.Now().UTC(),
	}
	if err := p.datasets.CreateUpload(ctx, tx, upload); err != nil {
		return err
	}

	datasetRows := make([]*types.DatasetRow, 0, c.table.NumRows())
	for i := 0; i < c.table.NumRows(); i++ {
		fields := map[string]string{}
		for col, header := range c.table.Headers {
			fields[header] = c.table.Value(i, col)
		}
		encoded, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		datasetRows = append(datasetRows, &types.DatasetRow{
			ID:       uuid.New(),
			UploadID: upload.ID,
			RowIndex: i,
			Fields:   datatypes.JSON(encoded),
		})
	}
	return p.datasets.CreateRows(ctx, tx, datasetRows)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func keysOf(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func timeKeysOf(set map[time.Time]struct{}) []time.Time {
	out := make([]time.Time, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func toPointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
