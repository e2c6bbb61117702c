package db_models

import "time"

const SettingFeedbackProtectionEnabled = "feedback_protection_enabled"

type Setting struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}
