package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFingerprintLength is the width of submission_logs.fingerprint_hash.
const MaxFingerprintLength = 255

// SubmissionLog is an append-only audit row for every gate decision that touches storage.
// A row with Blocked=false and a FeedbackID is a successful submission.
type SubmissionLog struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	IPAddress       string     `gorm:"type:varchar(64);not null" json:"ip_address"`
	FingerprintHash string     `gorm:"type:varchar(255);index" json:"fingerprint_hash"`
	UserAgent       string     `gorm:"type:text" json:"user_agent"`
	FeedbackID      *uuid.UUID `gorm:"type:uuid;index" json:"feedback_id"`
	Blocked         bool       `gorm:"not null;default:false;index" json:"blocked"`
	BlockReason     *string    `gorm:"type:varchar(512)" json:"block_reason"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	Feedback *Feedback `gorm:"foreignKey:FeedbackID;constraint:OnDelete:SET NULL" json:"-"`
}

func (SubmissionLog) TableName() string {
	return "submission_logs"
}

func (l *SubmissionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
