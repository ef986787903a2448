package models

type FireDepartment struct {
	BaseModel

	Name      string  `gorm:"uniqueIndex;not null" json:"name"`
	City      string  `gorm:"not null" json:"city"`
	Street    string  `gorm:"not null" json:"street"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	// Relationships
	Firefighters []Firefighter `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
