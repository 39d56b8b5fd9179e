package models

import "time"

// InfoPage is a singleton-per-slug rich text document. Content is always
// sanitized before persistence.
type InfoPage struct {
	Slug      string    `json:"slug" bson:"slug"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	UpdatedBy string    `json:"updatedBy,omitempty" bson:"updated_by,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
