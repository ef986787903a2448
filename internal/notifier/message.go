package notifier

import "fmt"

// AlarmMessage is the payload pushed to a firefighter's open session when an
// alarm is dispatched. It carries everything the client needs to render the
// alarm without a follow-up query.
type AlarmMessage struct {
	AlarmID       uint   `json:"alarm_id"`
	FirefighterID uint   `json:"firefighter_id"`
	City          string `json:"city"`
	Street        string `json:"street"`
	Description   string `json:"description"`
}

// String renders the labeled wire format consumed by the SSE frontend.
func (m AlarmMessage) String() string {
	return fmt.Sprintf("Id: %d, FirefighterId: %d, City: %s, Street: %s, Description: %s",
		m.AlarmID, m.FirefighterID, m.City, m.Street, m.Description)
}
