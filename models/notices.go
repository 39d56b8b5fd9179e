package models

import "time"

// Notice types
const (
	NoticeTypeInfo    = "info"
	NoticeTypeWarning = "warning"
	NoticeTypeUrgent  = "urgent"
	NoticeTypeSuccess = "success"
)

var NoticeTypes = []string{NoticeTypeInfo, NoticeTypeWarning, NoticeTypeUrgent, NoticeTypeSuccess}

type Notice struct {
	NoticeID  string     `json:"noticeid" bson:"noticeid"`
	Title     string     `json:"title" bson:"title"`
	Message   string     `json:"message" bson:"message"`
	Type      string     `json:"type" bson:"type"`
	IsActive  bool       `json:"isActive" bson:"is_active"`
	StartDate *time.Time `json:"startDate,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" bson:"end_date,omitempty"`
	CreatedBy string     `json:"createdBy" bson:"created_by"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

type NoticeStats struct {
	Total     int64            `json:"total"`
	Active    int64            `json:"active"`
	ByType    map[string]int64 `json:"byType"`
	Expired   int64            `json:"expired"`
	Scheduled int64            `json:"scheduled"`
}
