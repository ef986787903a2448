package dispatch

import (
	"context"
	"log"

	"github.com/piciu1221/firesignal/internal/models"
	"github.com/piciu1221/firesignal/internal/notifier"
)

// AlarmInput is the dispatcher's view of a new-alarm request.
type AlarmInput struct {
	City          string
	Street        string
	Description   string
	DepartmentIDs []uint
}

// Result describes a completed dispatch.
type Result struct {
	Alarm    models.Alarm
	Targeted int // distinct firefighters assigned
	Notified int // publish attempts that found an open channel
}

// Dispatcher persists a new alarm with its assignment records and fans the
// alarm out to every targeted firefighter's open session.
type Dispatcher struct {
	store    Store
	registry *notifier.Registry
}

func NewDispatcher(store Store, registry *notifier.Registry) *Dispatcher {
	return &Dispatcher{store: store, registry: registry}
}

// Dispatch runs the fan-out: persist the alarm, resolve and de-duplicate the
// targets, batch-insert one assignment per firefighter, then push to each
// open session. Persistence runs in one transaction and any failure aborts
// the whole dispatch with zero pushes sent. Delivery misses are expected
// (firefighter has no open session) and never fail the dispatch; the
// assignment row is the durable source of truth.
func (d *Dispatcher) Dispatch(ctx context.Context, input AlarmInput) (*Result, error) {
	alarm := models.Alarm{
		City:        input.City,
		Street:      input.Street,
		Description: input.Description,
	}

	var targets []models.Firefighter

	err := d.store.Transact(ctx, func(tx Store) error {
		if err := tx.CreateAlarm(ctx, &alarm); err != nil {
			return err
		}

		resolved, err := tx.FirefightersByDepartments(ctx, input.DepartmentIDs)
		if err != nil {
			return err
		}

		targets = dedupe(resolved)

		assignments := make([]models.AlarmedFirefighter, 0, len(targets))
		for _, ff := range targets {
			assignments = append(assignments, models.AlarmedFirefighter{
				AlarmID:       alarm.ID,
				FirefighterID: ff.ID,
			})
		}

		return tx.CreateAssignments(ctx, assignments)
	})

	if err != nil {
		return nil, err
	}

	// Pushes go out only after the transaction committed, so a firefighter is
	// never notified of an alarm that does not exist.
	notified := 0
	for _, ff := range targets {
		msg := notifier.AlarmMessage{
			AlarmID:       alarm.ID,
			FirefighterID: ff.ID,
			City:          alarm.City,
			Street:        alarm.Street,
			Description:   alarm.Description,
		}

		if d.registry.Publish(ff.Username, msg) {
			notified++
		} else {
			log.Printf("No open session for %s, alarm %d reaches them via the assignment list", ff.Username, alarm.ID)
		}
	}

	return &Result{Alarm: alarm, Targeted: len(targets), Notified: notified}, nil
}

// dedupe collapses duplicate firefighter rows by ID, keeping first-seen
// order. Department membership should make duplicates impossible, but the
// resolution query must not rely on that being enforced elsewhere.
func dedupe(firefighters []models.Firefighter) []models.Firefighter {
	seen := make(map[uint]struct{}, len(firefighters))
	out := firefighters[:0]

	for _, ff := range firefighters {
		if _, ok := seen[ff.ID]; ok {
			continue
		}
		seen[ff.ID] = struct{}{}
		out = append(out, ff)
	}

	return out
}
