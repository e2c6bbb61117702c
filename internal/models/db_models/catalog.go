package db_models

// Project is an exhibit that visitors may pick as the subject of their feedback.
type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}

func (Project) TableName() string {
	return "projects"
}

type Subject struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Active bool   `gorm:"not null;default:true" json:"active"`
}

func (Subject) TableName() string {
	return "subjects"
}

// AllModels lists every table the application owns, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Admin{},
		&Project{},
		&Subject{},
		&Setting{},
		&Feedback{},
		&SubmissionLog{},
	}
}
