package models

import "time"

// Event types
const (
	EventTypeClass        = "class"
	EventTypeWorkshop     = "workshop"
	EventTypeSpecial      = "special"
	EventTypeCapacitation = "capacitation"
)

var EventTypes = []string{EventTypeClass, EventTypeWorkshop, EventTypeSpecial, EventTypeCapacitation}

type Event struct {
	EventID         string     `json:"eventid" bson:"eventid"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	StartDate       time.Time  `json:"startDate" bson:"start_date"`
	EndDate         *time.Time `json:"endDate,omitempty" bson:"end_date,omitempty"`
	Type            string     `json:"type" bson:"type"`
	Category        string     `json:"category,omitempty" bson:"category,omitempty"`
	Color           string     `json:"color" bson:"color"`
	IsRecurring     bool       `json:"isRecurring" bson:"is_recurring"`
	RecurringDays   []int      `json:"recurringDays" bson:"recurring_days"` // 0-6 (Sunday-Saturday)
	Location        string     `json:"location,omitempty" bson:"location,omitempty"`
	Instructor      string     `json:"instructor,omitempty" bson:"instructor,omitempty"`
	MaxParticipants int        `json:"maxParticipants,omitempty" bson:"max_participants,omitempty"`
	Price           float64    `json:"price,omitempty" bson:"price,omitempty"`
	IsActive        bool       `json:"isActive" bson:"is_active"`
	CreatedBy       string     `json:"createdBy" bson:"created_by"`
	CreatedAt       time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updated_at"`
}

// EventOccurrence is one calendar entry in a month view: either a stored
// non-recurring event passed through, or a computed instance of a recurring
// template. Instances are never persisted.
type EventOccurrence struct {
	EventID         string     `json:"eventid,omitempty" bson:"-"`
	OriginalEventID string     `json:"originalEventId,omitempty" bson:"-"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Type            string     `json:"type"`
	Category        string     `json:"category,omitempty"`
	Color           string     `json:"color"`
	Location        string     `json:"location,omitempty"`
	Instructor      string     `json:"instructor,omitempty"`
	MaxParticipants int        `json:"maxParticipants,omitempty"`
	Price           float64    `json:"price,omitempty"`
	IsRecurring     bool       `json:"isRecurring"`
	IsInstance      bool       `json:"isInstance"`
}

type MonthEvents struct {
	Year                        int               `json:"year"`
	Month                       int               `json:"month"`
	Events                      []EventOccurrence `json:"events"`
	TotalEvents                 int               `json:"totalEvents"`
	RecurringInstancesGenerated int               `json:"recurringInstancesGenerated"`
}

type EventStats struct {
	TotalEvents     int64            `json:"totalEvents"`
	RecurringEvents int64            `json:"recurringEvents"`
	EventsByType    map[string]int64 `json:"eventsByType"`
}
