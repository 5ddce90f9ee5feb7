package types

import (
	"time"
)

// Student is the long-lived entity record. Columns are grouped into
// sectors (roster, current scores, pre/post observation, risk); an
// ingestion batch only writes the sectors its files were classified
// into, everything else keeps its prior value.
type Student struct {
	StudentID string `gorm:"primaryKey;column:student_id" json:"student_id"`
	Name      string `gorm:"not null;column:name" json:"name"`

	// Roster sector
	Email         string     `gorm:"column:email" json:"email"`
	BatchID       string     `gorm:"index;column:batch_id" json:"batch_id"`
	Branch        string     `gorm:"column:branch" json:"branch"`
	Year          string     `gorm:"column:year" json:"year"`
	IdentityProof string     `gorm:"column:identity_proof" json:"identity_proof"`
	StartDate     *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate       *time.Time `gorm:"column:end_date" json:"end_date"`

	// Current-score sector
	Attendance         int `gorm:"not null;default:0;column:attendance" json:"attendance"`
	DSAScore           int `gorm:"not null;default:0;column:dsa_score" json:"dsa_score"`
	MLScore            int `gorm:"not null;default:0;column:ml_score" json:"ml_score"`
	QAScore            int `gorm:"not null;default:0;column:qa_score" json:"qa_score"`
	ProjectsScore      int `gorm:"not null;default:0;column:projects_score" json:"projects_score"`
	MockInterviewScore int `gorm:"not null;default:0;column:mock_interview_score" json:"mock_interview_score"`

	// Observation sector (pre)
	PreScore            float64 `gorm:"default:0;column:pre_score" json:"pre_score"`
	PreCommunication    float64 `gorm:"default:0;column:pre_communication" json:"pre_communication"`
	PreEngagement       float64 `gorm:"default:0;column:pre_engagement" json:"pre_engagement"`
	PreSubjectKnowledge float64 `gorm:"default:0;column:pre_subject_knowledge" json:"pre_subject_knowledge"`
	PreConfidence       float64 `gorm:"default:0;column:pre_confidence" json:"pre_confidence"`
	PreFluency          float64 `gorm:"default:0;column:pre_fluency" json:"pre_fluency"`
	PreRemarks          string  `gorm:"column:pre_remarks" json:"pre_remarks"`
	PreStatus           string  `gorm:"column:pre_status" json:"pre_status"`

	// Observation sector (post)
	PostScore            float64 `gorm:"default:0;column:post_score" json:"post_score"`
	PostCommunication    float64 `gorm:"default:0;column:post_communication" json:"post_communication"`
	PostEngagement       float64 `gorm:"default:0;column:post_engagement" json:"post_engagement"`
	PostSubjectKnowledge float64 `gorm:"default:0;column:post_subject_knowledge" json:"post_subject_knowledge"`
	PostConfidence       float64 `gorm:"default:0;column:post_confidence" json:"post_confidence"`
	PostFluency          float64 `gorm:"default:0;column:post_fluency" json:"post_fluency"`
	PostRemarks          string  `gorm:"column:post_remarks" json:"post_remarks"`
	PostStatus           string  `gorm:"column:post_status" json:"post_status"`

	// Risk sector
	RAGStatus string `gorm:"default:Green;column:rag_status" json:"rag_status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
