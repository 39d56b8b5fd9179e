package events

import (
	"fmt"
	"slices"

	"milonga/models"
	"milonga/utils"
)

// Validate checks the date and recurrence invariants on an event before it is
// written. It is used for both creates and merged updates.
func Validate(ev *models.Event) error {
	if ev.Title == "" {
		return fmt.Errorf("title is required")
	}
	if ev.StartDate.IsZero() {
		return fmt.Errorf("startDate is required")
	}
	if !slices.Contains(models.EventTypes, ev.Type) {
		return fmt.Errorf("invalid event type: %s", ev.Type)
	}
	if ev.EndDate != nil && !ev.EndDate.After(ev.StartDate) {
		return fmt.Errorf("endDate must be after startDate")
	}
	if ev.Color != "" && !utils.ValidHexColor(ev.Color) {
		return fmt.Errorf("invalid color: %s", ev.Color)
	}
	if ev.IsRecurring {
		if len(ev.RecurringDays) == 0 {
			return fmt.Errorf("recurring events require at least one recurring day")
		}
		for _, d := range ev.RecurringDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("recurring day out of range: %d", d)
			}
		}
	}
	if ev.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
