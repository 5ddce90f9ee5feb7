package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceLog is one immutable (student, date) attendance fact.
// Re-ingesting a sheet replaces the rows for the (students, dates)
// window it covers instead of updating cells in place.
type AttendanceLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	StudentID string    `gorm:"not null;index;column:student_id" json:"student_id"`
	Date      time.Time `gorm:"not null;index;column:date" json:"date"`
	Status    string    `gorm:"not null;column:status" json:"status"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

// AssessmentRound is one round of one assessment sheet for one student.
type AssessmentRound struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	StudentID      string    `gorm:"not null;index;column:student_id" json:"student_id"`
	RoundLabel     string    `gorm:"not null;column:round_label" json:"round_label"`
	TechnicalScore float64   `gorm:"default:0;column:technical_score" json:"technical_score"`
	VerbalScore    float64   `gorm:"default:0;column:verbal_score" json:"verbal_score"`
	MathScore      float64   `gorm:"default:0;column:math_score" json:"math_score"`
	LogicScore     float64   `gorm:"default:0;column:logic_score" json:"logic_score"`
	TotalScore     float64   `gorm:"default:0;column:total_score" json:"total_score"`
	Percentage     float64   `gorm:"default:0;column:percentage" json:"percentage"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (AssessmentRound) TableName() string {
	return "assessment_rounds"
}

// RiskLog is one historical risk snapshot. PeriodName keeps the raw
// column label; Parsed is false when the label did not yield a real
// calendar date and Date holds the reference-year fallback.
type RiskLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	StudentID  string    `gorm:"not null;index;column:student_id" json:"student_id"`
	Date       time.Time `gorm:"not null;index;column:date" json:"date"`
	Status     string    `gorm:"not null;column:status" json:"status"`
	PeriodName string    `gorm:"column:period_name" json:"period_name"`
	Parsed     bool      `gorm:"not null;default:true;column:parsed" json:"parsed"`
}

func (RiskLog) TableName() string {
	return "risk_logs"
}
