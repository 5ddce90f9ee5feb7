package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

// StudentSnapshot is one entity record plus whichever fact series the
// caller asked to include.
type StudentSnapshot struct {
	Student     types.Student           `json:"student"`
	Attendance  []types.AttendanceLog   `json:"attendance,omitempty"`
	Assessments []types.AssessmentRound `json:"assessments,omitempty"`
	RiskHistory []types.RiskLog         `json:"risk,omitempty"`
}

type StudentService interface {
	List(ctx context.Context) ([]types.Student, error)
	Snapshot(ctx context.Context, studentID string, include []string) (*StudentSnapshot, error)
}

type studentService struct {
	db             *gorm.DB
	log            *logger.Logger
	studentRepo    repos.StudentRepo
	attendanceRepo repos.AttendanceRepo
	assessmentRepo repos.AssessmentRepo
	riskRepo       repos.RiskRepo
}

func NewStudentService(
	db *gorm.DB,
	log *logger.Logger,
	studentRepo repos.StudentRepo,
	attendanceRepo repos.AttendanceRepo,
	assessmentRepo repos.AssessmentRepo,
	riskRepo repos.RiskRepo,
) StudentService {
	return &studentService{
		db:             db,
		log:            log.With("service", "StudentService"),
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		assessmentRepo: assessmentRepo,
		riskRepo:       riskRepo,
	}
}

func (ss *studentService) List(ctx context.Context) ([]types.Student, error) {
	students, err := ss.studentRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (ss *studentService) Snapshot(ctx context.Context, studentID string, include []string) (*StudentSnapshot, error) {
	student, err := ss.studentRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	snapshot := &StudentSnapshot{Student: *student}

	for _, series := range include {
		switch strings.ToLower(strings.TrimSpace(series)) {
		case "attendance":
			facts, err := ss.attendanceRepo.ListByStudent(ctx, nil, studentID)
			if err != nil {
				return nil, fmt.Errorf("load attendance: %w", err)
			}
			snapshot.Attendance = facts
		case "assessments":
			facts, err := ss.assessmentRepo.ListByStudent(ctx, nil, studentID)
			if err != nil {
				return nil, fmt.Errorf("load assessments: %w", err)
			}
			snapshot.Assessments = facts
		case "risk":
			facts, err := ss.riskRepo.ListByStudent(ctx, nil, studentID)
			if err != nil {
				return nil, fmt.Errorf("load risk history: %w", err)
			}
			snapshot.RiskHistory = facts
		case "":
		default:
			ss.log.Debug("unknown include series ignored", "series", series)
		}
	}
	return snapshot, nil
}
