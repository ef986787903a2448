package models

import "time"

type Alarm struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	City        string `gorm:"not null" json:"city"`
	Street      string `gorm:"not null" json:"street"`
	Description string `gorm:"not null" json:"description"`
	// The database assigns the timestamp so alarm ordering does not depend
	// on application clocks.
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false" json:"created_at"`
}
