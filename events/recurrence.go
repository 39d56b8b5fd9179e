package events

import (
	"slices"
	"sort"
	"time"

	"milonga/models"
)

// Expand computes the concrete occurrences of a recurring event template
// inside [windowStart, windowEnd], both inclusive. The time of day is
// anchored to the template's startDate; if the template carries an endDate,
// each occurrence's endDate is offset by the template's duration. Occurrences
// are computed on the fly and never persisted.
func Expand(event models.Event, windowStart, windowEnd time.Time) []models.EventOccurrence {
	var instances []models.EventOccurrence
	if !event.IsRecurring || len(event.RecurringDays) == 0 {
		return instances
	}

	anchor := event.StartDate
	var duration time.Duration
	if event.EndDate != nil {
		duration = event.EndDate.Sub(event.StartDate)
	}

	// The template never fires before its own start date.
	cursor := windowStart
	if event.StartDate.After(cursor) {
		cursor = event.StartDate
	}
	cursor = time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, cursor.Location())

	for day := cursor; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		// time.Weekday already counts 0=Sunday .. 6=Saturday.
		if !slices.Contains(event.RecurringDays, int(day.Weekday())) {
			continue
		}

		start := time.Date(day.Year(), day.Month(), day.Day(),
			anchor.Hour(), anchor.Minute(), anchor.Second(), 0, anchor.Location())

		inst := models.EventOccurrence{
			OriginalEventID: event.EventID,
			Title:           event.Title,
			Description:     event.Description,
			StartDate:       start,
			Type:            event.Type,
			Category:        event.Category,
			Color:           event.Color,
			Location:        event.Location,
			Instructor:      event.Instructor,
			MaxParticipants: event.MaxParticipants,
			Price:           event.Price,
			IsRecurring:     true,
			IsInstance:      true,
		}
		if event.EndDate != nil {
			end := start.Add(duration)
			inst.EndDate = &end
		}
		instances = append(instances, inst)
	}

	return instances
}

// MonthWindow returns the first and last instants of a calendar month.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MergeMonth combines stored events with recurring-template expansions into a
// single list sorted by start date. Recurring templates contribute computed
// instances; everything else passes through unchanged.
func MergeMonth(stored []models.Event, windowStart, windowEnd time.Time) ([]models.EventOccurrence, int) {
	var merged []models.EventOccurrence
	generated := 0

	for _, ev := range stored {
		if ev.IsRecurring {
			instances := Expand(ev, windowStart, windowEnd)
			generated += len(instances)
			merged = append(merged, instances...)
			continue
		}
		if ev.StartDate.Before(windowStart) || ev.StartDate.After(windowEnd) {
			continue
		}
		merged = append(merged, models.EventOccurrence{
			EventID:         ev.EventID,
			Title:           ev.Title,
			Description:     ev.Description,
			StartDate:       ev.StartDate,
			EndDate:         ev.EndDate,
			Type:            ev.Type,
			Category:        ev.Category,
			Color:           ev.Color,
			Location:        ev.Location,
			Instructor:      ev.Instructor,
			MaxParticipants: ev.MaxParticipants,
			Price:           ev.Price,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].StartDate.Before(merged[j].StartDate)
	})

	return merged, generated
}
