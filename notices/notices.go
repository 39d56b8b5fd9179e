package notices

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"milonga/db"
	"milonga/models"
	"milonga/mq"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func validate(n *models.Notice) error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Message == "" {
		return fmt.Errorf("message is required")
	}
	if !slices.Contains(models.NoticeTypes, n.Type) {
		return fmt.Errorf("invalid notice type: %s", n.Type)
	}
	if n.StartDate != nil && n.EndDate != nil && n.StartDate.After(*n.EndDate) {
		return fmt.Errorf("startDate must not be after endDate")
	}
	return nil
}

func CreateNotice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var notice models.Notice
	if err := json.NewDecoder(r.Body).Decode(&notice); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if notice.Type == "" {
		notice.Type = models.NoticeTypeInfo
	}
	if err := validate(&notice); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	notice.NoticeID = "n" + utils.GenerateID(12)
	notice.IsActive = true
	notice.CreatedBy = utils.GetUserIDFromRequest(r)
	notice.CreatedAt = now
	notice.UpdatedAt = now

	if _, err := db.NoticesCollection.InsertOne(r.Context(), notice); err != nil {
		log.Errorf("Failed to insert notice: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create notice")
		return
	}

	mq.Emit("notice-created", mq.Index{EntityType: "notice", EntityId: notice.NoticeID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, notice, "Notice created successfully", nil)
}

func GetNotice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var notice models.Notice
	err := db.NoticesCollection.FindOne(r.Context(), bson.M{"noticeid": ps.ByName("id")}).Decode(&notice)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Notice not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notice")
		return
	}
	utils.SendResponse(w, http.StatusOK, notice, "OK", nil)
}

// ListNotices returns everything, newest first. Admin view.
func ListNotices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	_, limit, skip := utils.ParsePagination(r, 50)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := db.NoticesCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notices")
		return
	}
	defer cursor.Close(r.Context())

	notices := []models.Notice{}
	if err := cursor.All(r.Context(), &notices); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode notices")
		return
	}
	utils.SendResponse(w, http.StatusOK, notices, "OK", nil)
}

// GetActiveNotices returns the notices currently visible to users.
func GetActiveNotices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listVisible(w, r, visibleFilter(time.Now()))
}

// GetUrgentNotices returns visible notices of type urgent.
func GetUrgentNotices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := visibleFilter(time.Now())
	filter["type"] = models.NoticeTypeUrgent
	listVisible(w, r, filter)
}

func listVisible(w http.ResponseWriter, r *http.Request, filter bson.M) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.NoticesCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notices")
		return
	}
	defer cursor.Close(r.Context())

	notices := []models.Notice{}
	if err := cursor.All(r.Context(), &notices); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode notices")
		return
	}
	utils.SendResponse(w, http.StatusOK, notices, "OK", nil)
}

func UpdateNotice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var current models.Notice
	err := db.NoticesCollection.FindOne(r.Context(), bson.M{"noticeid": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Notice not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notice")
		return
	}

	merged := current
	if err := json.NewDecoder(r.Body).Decode(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	merged.NoticeID = current.NoticeID
	merged.CreatedBy = current.CreatedBy
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = time.Now()

	if err := validate(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.NoticesCollection.ReplaceOne(r.Context(), bson.M{"noticeid": id}, merged); err != nil {
		log.Errorf("Failed to update notice %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notice")
		return
	}

	mq.Emit("notice-updated", mq.Index{EntityType: "notice", EntityId: id, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, merged, "Notice updated successfully", nil)
}

// ToggleNotice flips the active flag.
func ToggleNotice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var current models.Notice
	err := db.NoticesCollection.FindOne(r.Context(), bson.M{"noticeid": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Notice not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notice")
		return
	}

	newState := !current.IsActive
	_, err = db.NoticesCollection.UpdateOne(
		r.Context(),
		bson.M{"noticeid": id},
		bson.M{"$set": bson.M{"is_active": newState, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to toggle notice")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]bool{"isActive": newState}, "Notice toggled", nil)
}

func DeleteNotice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	res, err := db.NoticesCollection.DeleteOne(r.Context(), bson.M{"noticeid": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete notice")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notice not found")
		return
	}

	mq.Emit("notice-deleted", mq.Index{EntityType: "notice", EntityId: id, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Notice deleted", nil)
}

// GetNoticeStats aggregates counts by type plus expired and scheduled
// subsets. Expired counts any active notice whose end date has passed, even
// when it was never explicitly deactivated.
func GetNoticeStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	now := time.Now()

	total, err := db.NoticesCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	active, err := db.NoticesCollection.CountDocuments(r.Context(), visibleFilter(now))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	expired, err := db.NoticesCollection.CountDocuments(r.Context(), bson.M{
		"is_active": true,
		"end_date":  bson.M{"$lt": now},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	scheduled, err := db.NoticesCollection.CountDocuments(r.Context(), bson.M{
		"is_active":  true,
		"start_date": bson.M{"$gt": now},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	byType := make(map[string]int64, len(models.NoticeTypes))
	for _, t := range models.NoticeTypes {
		n, err := db.NoticesCollection.CountDocuments(r.Context(), bson.M{"type": t})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		byType[t] = n
	}

	stats := models.NoticeStats{
		Total:     total,
		Active:    active,
		ByType:    byType,
		Expired:   expired,
		Scheduled: scheduled,
	}
	utils.SendResponse(w, http.StatusOK, stats, "OK", nil)
}
