package events

import (
	"testing"
	"time"

	"milonga/models"
)

func validEvent() models.Event {
	return models.Event{
		Title:     "Clase de tango",
		Type:      models.EventTypeClass,
		StartDate: time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
		Color:     "#3B82F6",
	}
}

func TestValidate(t *testing.T) {
	ev := validEvent()
	if err := Validate(&ev); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	ev = validEvent()
	ev.Title = ""
	if err := Validate(&ev); err == nil {
		t.Error("missing title accepted")
	}

	ev = validEvent()
	ev.Type = "party"
	if err := Validate(&ev); err == nil {
		t.Error("unknown type accepted")
	}

	ev = validEvent()
	bad := ev.StartDate.Add(-time.Hour)
	ev.EndDate = &bad
	if err := Validate(&ev); err == nil {
		t.Error("endDate before startDate accepted")
	}

	ev = validEvent()
	same := ev.StartDate
	ev.EndDate = &same
	if err := Validate(&ev); err == nil {
		t.Error("endDate equal to startDate accepted")
	}

	ev = validEvent()
	ev.IsRecurring = true
	if err := Validate(&ev); err == nil {
		t.Error("recurring event without recurringDays accepted")
	}

	ev = validEvent()
	ev.IsRecurring = true
	ev.RecurringDays = []int{1, 7}
	if err := Validate(&ev); err == nil {
		t.Error("recurring day 7 accepted")
	}

	ev = validEvent()
	ev.Color = "blue"
	if err := Validate(&ev); err == nil {
		t.Error("non-hex color accepted")
	}
}
