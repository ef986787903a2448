package models

type User struct {
	BaseModel

	Username     string `gorm:"uniqueIndex;not null;size:16" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:user" json:"role"`
}
