package models

type Firefighter struct {
	BaseModel

	DepartmentID    uint   `gorm:"not null;index" json:"department_id"`
	Name            string `gorm:"not null" json:"name"`
	Username        string `gorm:"uniqueIndex;not null" json:"username"`
	Commander       bool   `gorm:"not null;default:false" json:"commander"`
	Driver          bool   `gorm:"not null;default:false" json:"driver"`
	TechnicalRescue bool   `gorm:"not null;default:false" json:"technical_rescue"`

	// Relationships
	Department FireDepartment `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
