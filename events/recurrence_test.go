package events

import (
	"testing"
	"time"

	"milonga/models"
)

func mondayAt(t *testing.T, hour int) time.Time {
	t.Helper()
	// 2025-06-02 is a Monday.
	return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
}

func TestExpandMondayWednesday(t *testing.T) {
	event := models.Event{
		EventID:       "e1",
		Title:         "Clase de tango",
		Type:          models.EventTypeClass,
		StartDate:     mondayAt(t, 18),
		IsRecurring:   true,
		RecurringDays: []int{1, 3}, // Mon, Wed
	}

	windowStart, windowEnd := MonthWindow(2025, 6)
	instances := Expand(event, windowStart, windowEnd)

	// June 2025 has 5 Mondays (2,9,16,23,30) and 4 Wednesdays (4,11,18,25).
	if len(instances) != 9 {
		t.Fatalf("expected 9 instances, got %d", len(instances))
	}
	for _, inst := range instances {
		wd := inst.StartDate.Weekday()
		if wd != time.Monday && wd != time.Wednesday {
			t.Errorf("instance on %v falls on %v", inst.StartDate, wd)
		}
		if inst.StartDate.Hour() != 18 || inst.StartDate.Minute() != 0 {
			t.Errorf("instance time of day not anchored: %v", inst.StartDate)
		}
		if !inst.IsInstance {
			t.Error("instance not tagged as instance")
		}
		if inst.OriginalEventID != "e1" {
			t.Errorf("instance does not reference template: %q", inst.OriginalEventID)
		}
	}
}

func TestExpandEndDateOffset(t *testing.T) {
	start := mondayAt(t, 18)
	end := start.Add(90 * time.Minute)
	event := models.Event{
		EventID:       "e1",
		StartDate:     start,
		EndDate:       &end,
		IsRecurring:   true,
		RecurringDays: []int{1},
	}

	windowStart, windowEnd := MonthWindow(2025, 6)
	instances := Expand(event, windowStart, windowEnd)
	if len(instances) == 0 {
		t.Fatal("expected instances")
	}
	for _, inst := range instances {
		if inst.EndDate == nil {
			t.Fatal("instance missing endDate")
		}
		if got := inst.EndDate.Sub(inst.StartDate); got != 90*time.Minute {
			t.Errorf("duration = %v, want 90m", got)
		}
	}
}

func TestExpandWindowBoundaries(t *testing.T) {
	event := models.Event{
		EventID:       "e1",
		StartDate:     mondayAt(t, 10),
		IsRecurring:   true,
		RecurringDays: []int{1},
	}

	// Window ending exactly on a Monday includes that Monday.
	windowStart := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC) // a Monday, midnight
	instances := Expand(event, windowStart, windowEnd)
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance on the window-end day, got %d", len(instances))
	}
	if instances[0].StartDate.Day() != 9 {
		t.Errorf("instance on day %d, want 9", instances[0].StartDate.Day())
	}

	// One day earlier and the Monday is excluded.
	instances = Expand(event, windowStart, windowEnd.AddDate(0, 0, -1))
	if len(instances) != 0 {
		t.Fatalf("expected 0 instances past window end, got %d", len(instances))
	}
}

func TestExpandSingleDayWindow(t *testing.T) {
	event := models.Event{
		EventID:       "e1",
		StartDate:     mondayAt(t, 10),
		IsRecurring:   true,
		RecurringDays: []int{1},
	}

	day := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC) // Monday
	instances := Expand(event, day, day)
	if len(instances) != 1 {
		t.Fatalf("single-day matching window: expected 1 instance, got %d", len(instances))
	}
}

func TestExpandRespectsTemplateStart(t *testing.T) {
	event := models.Event{
		EventID:       "e1",
		StartDate:     time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC), // mid-month Monday
		IsRecurring:   true,
		RecurringDays: []int{1},
	}

	windowStart, windowEnd := MonthWindow(2025, 6)
	instances := Expand(event, windowStart, windowEnd)
	// Only the Mondays on or after the 16th: 16, 23, 30.
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(instances))
	}
	if instances[0].StartDate.Day() != 16 {
		t.Errorf("first instance on day %d, want 16", instances[0].StartDate.Day())
	}
}

func TestMergeMonthSortsAndCounts(t *testing.T) {
	end := time.Date(2025, 6, 20, 21, 0, 0, 0, time.UTC)
	oneOff := models.Event{
		EventID:   "e-oneoff",
		Title:     "Milonga especial",
		Type:      models.EventTypeSpecial,
		StartDate: time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}
	recurring := models.Event{
		EventID:       "e-rec",
		Title:         "Clase semanal",
		Type:          models.EventTypeClass,
		StartDate:     time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
		IsRecurring:   true,
		RecurringDays: []int{1},
	}
	outside := models.Event{
		EventID:   "e-outside",
		StartDate: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
	}

	windowStart, windowEnd := MonthWindow(2025, 6)
	merged, generated := MergeMonth([]models.Event{oneOff, recurring, outside}, windowStart, windowEnd)

	if generated != 5 { // Mondays 2,9,16,23,30
		t.Errorf("generated = %d, want 5", generated)
	}
	if len(merged) != 6 {
		t.Fatalf("merged length = %d, want 6", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].StartDate.Before(merged[i-1].StartDate) {
			t.Errorf("merged events not sorted at index %d", i)
		}
	}
	for _, occ := range merged {
		if occ.EventID == "e-outside" {
			t.Error("event outside the window leaked into the month view")
		}
	}
}
