package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"milonga/authz"
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

var duracionRe = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

func validateVideo(v *models.Video) error {
	if v.Titulo == "" {
		return fmt.Errorf("titulo is required")
	}
	if v.ModuleID == "" {
		return fmt.Errorf("moduleId is required")
	}
	if v.Precio < 0 || v.PrecioARS < 0 || v.PrecioUSD < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if v.Duracion != "" && !duracionRe.MatchString(v.Duracion) {
		return fmt.Errorf("duracion must look like MM:SS")
	}
	return nil
}

func CreateVideo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var video models.Video
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	// The route carries the parent module.
	if moduleID := ps.ByName("moduleId"); moduleID != "" {
		video.ModuleID = moduleID
	}
	if err := validateVideo(&video); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The parent module must exist.
	err := db.ModulesCollection.FindOne(r.Context(), bson.M{"moduleid": video.ModuleID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusBadRequest, "Module not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify module")
		return
	}

	now := time.Now()
	video.ID = "v" + utils.GenerateID(12)
	video.Activo = true
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := db.VideosCollection.InsertOne(r.Context(), video); err != nil {
		log.Errorf("Failed to insert video: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create video")
		return
	}

	mq.Emit("video-created", mq.Index{EntityType: "video", EntityId: video.ID, ItemId: video.ModuleID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, video, "Video created successfully", nil)
}

func GetVideo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var video models.Video
	err := db.VideosCollection.FindOne(r.Context(), bson.M{"id": ps.ByName("id")}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Video not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch video")
		return
	}
	utils.SendResponse(w, http.StatusOK, video, "OK", nil)
}

func ListVideos(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"activo": true}
	if moduleID := r.URL.Query().Get("moduleId"); moduleID != "" {
		filter["moduleid"] = moduleID
	}
	if r.URL.Query().Get("all") == "true" && authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		delete(filter, "activo")
	}

	opts := options.Find().SetSort(bson.D{{Key: "moduleid", Value: 1}, {Key: "orden", Value: 1}})
	cursor, err := db.VideosCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}
	defer cursor.Close(r.Context())

	videos := []models.Video{}
	if err := cursor.All(r.Context(), &videos); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode videos")
		return
	}
	utils.SendResponse(w, http.StatusOK, videos, "OK", nil)
}

func UpdateVideo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var current models.Video
	err := db.VideosCollection.FindOne(r.Context(), bson.M{"id": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Video not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch video")
		return
	}

	merged := current
	if err := json.NewDecoder(r.Body).Decode(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	merged.ID = current.ID
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = time.Now()

	if err := validateVideo(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.VideosCollection.ReplaceOne(r.Context(), bson.M{"id": id}, merged); err != nil {
		log.Errorf("Failed to update video %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update video")
		return
	}

	mq.Emit("video-updated", mq.Index{EntityType: "video", EntityId: id, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, merged, "Video updated successfully", nil)
}

func DeleteVideo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	res, err := db.VideosCollection.UpdateOne(
		r.Context(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"activo": false, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete video")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Video not found")
		return
	}

	mq.Emit("video-deactivated", mq.Index{EntityType: "video", EntityId: id, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Video deactivated", nil)
}
