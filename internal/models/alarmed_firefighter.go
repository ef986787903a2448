package models

// AlarmedFirefighter links an alarm to one targeted firefighter. Accepted is
// tri-state: nil until the firefighter responds, then true or false exactly
// once.
type AlarmedFirefighter struct {
	AlarmID       uint  `gorm:"primaryKey;autoIncrement:false" json:"alarm_id"`
	FirefighterID uint  `gorm:"primaryKey;autoIncrement:false" json:"firefighter_id"`
	Accepted      *bool `json:"accepted"`

	// Relationships
	Alarm       Alarm       `gorm:"foreignKey:AlarmID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Firefighter Firefighter `gorm:"foreignKey:FirefighterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
