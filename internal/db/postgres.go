package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
	"github.com/tpdash/tp-dashboard-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "tpdash", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Student{},
		&types.AttendanceLog{},
		&types.AssessmentRound{},
		&types.RiskLog{},
		&types.DatasetUpload{},
		&types.DatasetRow{},
		&types.Lecture{},
		&types.AgendaUnit{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, fk := range []struct {
		model any
		name  string
		ddl   string
	}{
		{&types.AttendanceLog{}, "fk_attendance_logs_student_id", `
			ALTER TABLE "attendance_logs"
			ADD CONSTRAINT "fk_attendance_logs_student_id"
			FOREIGN KEY ("student_id")
			REFERENCES "students"("student_id")
			ON DELETE CASCADE
		`},
		{&types.AssessmentRound{}, "fk_assessment_rounds_student_id", `
			ALTER TABLE "assessment_rounds"
			ADD CONSTRAINT "fk_assessment_rounds_student_id"
			FOREIGN KEY ("student_id")
			REFERENCES "students"("student_id")
			ON DELETE CASCADE
		`},
		{&types.RiskLog{}, "fk_risk_logs_student_id", `
			ALTER TABLE "risk_logs"
			ADD CONSTRAINT "fk_risk_logs_student_id"
			FOREIGN KEY ("student_id")
			REFERENCES "students"("student_id")
			ON DELETE CASCADE
		`},
		{&types.DatasetRow{}, "fk_dataset_rows_upload_id", `
			ALTER TABLE "dataset_rows"
			ADD CONSTRAINT "fk_dataset_rows_upload_id"
			FOREIGN KEY ("upload_id")
			REFERENCES "dataset_uploads"("id")
			ON DELETE CASCADE
		`},
	} {
		if s.db.Migrator().HasConstraint(fk.model, fk.name) {
			continue
		}
		if err := s.db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
