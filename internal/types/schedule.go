package types

import (
	"time"

	"github.com/google/uuid"
)

// Lecture is one scheduled session parsed from a schedule sheet.
// Schedule ingestion is a sector-wide refresh: all rows are replaced.
type Lecture struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Batch     string    `gorm:"column:batch" json:"batch"`
	Subject   string    `gorm:"column:subject" json:"subject"`
	Topic     string    `gorm:"column:topic" json:"topic"`
	Room      string    `gorm:"column:room" json:"room"`
	StartTime string    `gorm:"column:start_time" json:"start_time"`
	EndTime   string    `gorm:"column:end_time" json:"end_time"`
	Date      time.Time `gorm:"index;column:date" json:"date"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// AgendaUnit is one syllabus unit parsed from an agenda sheet.
type AgendaUnit struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UnitNumber int       `gorm:"not null;column:unit_number" json:"unit_number"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	Status     string    `gorm:"default:Pending;column:status" json:"status"`
	Progress   int       `gorm:"not null;default:0;column:progress" json:"progress"`
}

func (AgendaUnit) TableName() string {
	return "agenda_units"
}
