package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"milonga/db"
	"milonga/models"
	"milonga/mq"
	"milonga/rdx"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Month views tolerate this much staleness between writes; any event write
// invalidates them outright.
const monthCacheTTL = 10 * time.Minute

const monthCachePattern = "events:month:*"

func monthCacheKey(year, month int) string {
	return fmt.Sprintf("events:month:%d:%02d", year, month)
}

// invalidateMonthCache drops every cached month view. A recurring template
// edit can touch an unbounded set of months, so all keys go.
func invalidateMonthCache(ctx context.Context) {
	keys, err := rdx.Conn.Keys(ctx, monthCachePattern).Result()
	if err != nil {
		log.Warnf("Failed to scan month cache: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := rdx.Conn.Del(ctx, keys...).Err(); err != nil {
		log.Warnf("Failed to invalidate month cache: %v", err)
	}
}

func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if event.Color == "" {
		event.Color = "#3B82F6"
	}
	if err := Validate(&event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	event.EventID = "e" + utils.GenerateID(12)
	event.IsActive = true
	event.CreatedBy = utils.GetUserIDFromRequest(r)
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := db.EventsCollection.InsertOne(r.Context(), event); err != nil {
		log.Errorf("Failed to insert event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	invalidateMonthCache(r.Context())
	mq.Emit("event-created", mq.Index{EntityType: "event", EntityId: event.EventID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, event, "Event created successfully", nil)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var event models.Event
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": ps.ByName("id")}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	} else if err != nil {
		log.Errorf("Failed to fetch event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	utils.SendResponse(w, http.StatusOK, event, "OK", nil)
}

// ListEvents returns stored events, optionally filtered by type and active
// state. Recurring templates come back as templates, not expanded instances.
func ListEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if t := r.URL.Query().Get("type"); t != "" {
		filter["type"] = t
	}
	if active := r.URL.Query().Get("active"); active != "" {
		filter["is_active"] = active == "true"
	} else {
		filter["is_active"] = true
	}

	_, limit, skip := utils.ParsePagination(r, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := db.EventsCollection.Find(r.Context(), filter, opts)
	if err != nil {
		log.Errorf("Failed to list events: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(r.Context())

	events := []models.Event{}
	if err := cursor.All(r.Context(), &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}

	utils.SendResponse(w, http.StatusOK, events, "OK", nil)
}

func UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var current models.Event
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	// Merge the proposed fields over the stored record, then re-validate the
	// whole thing so partial updates cannot break the date invariants.
	merged := current
	if err := json.NewDecoder(r.Body).Decode(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	merged.EventID = current.EventID
	merged.CreatedBy = current.CreatedBy
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = time.Now()

	if err := Validate(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = db.EventsCollection.ReplaceOne(r.Context(), bson.M{"eventid": id}, merged)
	if err != nil {
		log.Errorf("Failed to update event %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	invalidateMonthCache(r.Context())
	mq.Emit("event-updated", mq.Index{EntityType: "event", EntityId: id, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, merged, "Event updated successfully", nil)
}

// DeleteEvent soft-deletes by default. Admins may pass ?hard=true to remove
// the record outright; there are no cascading side effects either way.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if r.URL.Query().Get("hard") == "true" {
		res, err := db.EventsCollection.DeleteOne(r.Context(), bson.M{"eventid": id})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
			return
		}
		if res.DeletedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		invalidateMonthCache(r.Context())
		mq.Emit("event-deleted", mq.Index{EntityType: "event", EntityId: id, Method: "DELETE"})
		utils.SendResponse(w, http.StatusOK, nil, "Event deleted permanently", nil)
		return
	}

	res, err := db.EventsCollection.UpdateOne(
		r.Context(),
		bson.M{"eventid": id},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	invalidateMonthCache(r.Context())
	mq.Emit("event-deactivated", mq.Index{EntityType: "event", EntityId: id, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Event deactivated", nil)
}

// GetMonthEvents returns all occurrences inside a calendar month: stored
// one-off events plus computed instances of every recurring template.
func GetMonthEvents(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	year, err := strconv.Atoi(ps.ByName("year"))
	if err != nil || year < 1970 || year > 3000 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(ps.ByName("month"))
	if err != nil || month < 1 || month > 12 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	cacheKey := monthCacheKey(year, month)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var result models.MonthEvents
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			utils.SendResponse(w, http.StatusOK, result, "OK", nil)
			return
		}
	}

	windowStart, windowEnd := MonthWindow(year, month)

	// Recurring templates that started before the window still produce
	// instances inside it, so the window filter only applies to one-offs.
	filter := bson.M{
		"is_active": true,
		"$or": []bson.M{
			{"is_recurring": true},
			{"start_date": bson.M{"$gte": windowStart, "$lte": windowEnd}},
		},
	}

	cursor, err := db.EventsCollection.Find(r.Context(), filter)
	if err != nil {
		log.Errorf("Failed to fetch month events: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(r.Context())

	var stored []models.Event
	if err := cursor.All(r.Context(), &stored); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}

	merged, generated := MergeMonth(stored, windowStart, windowEnd)
	result := models.MonthEvents{
		Year:                        year,
		Month:                       month,
		Events:                      merged,
		TotalEvents:                 len(merged),
		RecurringInstancesGenerated: generated,
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(payload), monthCacheTTL); err != nil {
			log.Warnf("Failed to cache month events: %v", err)
		}
	}

	utils.SendResponse(w, http.StatusOK, result, "OK", nil)
}

func GetEventStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	total, err := db.EventsCollection.CountDocuments(r.Context(), bson.M{"is_active": true})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	recurring, err := db.EventsCollection.CountDocuments(r.Context(), bson.M{"is_active": true, "is_recurring": true})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	byType := make(map[string]int64, len(models.EventTypes))
	for _, t := range models.EventTypes {
		n, err := db.EventsCollection.CountDocuments(r.Context(), bson.M{"is_active": true, "type": t})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		byType[t] = n
	}

	stats := models.EventStats{
		TotalEvents:     total,
		RecurringEvents: recurring,
		EventsByType:    byType,
	}
	utils.SendResponse(w, http.StatusOK, stats, "OK", nil)
}
