package app

import (
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
)

type Repos struct {
	Student    repos.StudentRepo
	Attendance repos.AttendanceRepo
	Assessment repos.AssessmentRepo
	Risk       repos.RiskRepo
	Schedule   repos.ScheduleRepo
	Dataset    repos.DatasetRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Student:    repos.NewStudentRepo(db, log),
		Attendance: repos.NewAttendanceRepo(db, log),
		Assessment: repos.NewAssessmentRepo(db, log),
		Risk:       repos.NewRiskRepo(db, log),
		Schedule:   repos.NewScheduleRepo(db, log),
		Dataset:    repos.NewDatasetRepo(db, log),
	}
}
