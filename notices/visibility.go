package notices

import (
	"time"

	"milonga/models"

	"go.mongodb.org/mongo-driver/bson"
)

// IsVisible reports whether a notice should be shown at the given instant:
// active, started (or no start), and not yet ended (or no end).
func IsVisible(n models.Notice, now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if n.StartDate != nil && n.StartDate.After(now) {
		return false
	}
	if n.EndDate != nil && n.EndDate.Before(now) {
		return false
	}
	return true
}

// visibleFilter is the query-side twin of IsVisible.
func visibleFilter(now time.Time) bson.M {
	return bson.M{
		"is_active": true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"start_date": bson.M{"$exists": false}},
				{"start_date": nil},
				{"start_date": bson.M{"$lte": now}},
			}},
			{"$or": []bson.M{
				{"end_date": bson.M{"$exists": false}},
				{"end_date": nil},
				{"end_date": bson.M{"$gte": now}},
			}},
		},
	}
}
