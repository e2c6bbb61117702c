package db_models

// Admin is a dashboard operator. Visitors never have accounts.
type Admin struct {
	BaseModel
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(32);not null;default:admin" json:"role"`
}

func (Admin) TableName() string {
	return "admins"
}
