// Package catalog manages the paid content units: modules and the videos
// that belong to them.
package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
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

func validateModule(m *models.Module) error {
	if m.Titulo == "" {
		return fmt.Errorf("titulo is required")
	}
	if m.Precio < 0 || m.PrecioARS < 0 || m.PrecioUSD < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	return nil
}

func CreateModule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var module models.Module
	if err := json.NewDecoder(r.Body).Decode(&module); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validateModule(&module); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	module.ModuleID = "m" + utils.GenerateID(12)
	module.Activo = true
	module.CreatedAt = now
	module.UpdatedAt = now

	if _, err := db.ModulesCollection.InsertOne(r.Context(), module); err != nil {
		log.Errorf("Failed to insert module: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create module")
		return
	}

	mq.Emit("module-created", mq.Index{EntityType: "module", EntityId: module.ModuleID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, module, "Module created successfully", nil)
}

func GetModule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var module models.Module
	err := db.ModulesCollection.FindOne(r.Context(), bson.M{"moduleid": ps.ByName("id")}).Decode(&module)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Module not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch module")
		return
	}
	utils.SendResponse(w, http.StatusOK, module, "OK", nil)
}

// ListModules returns active modules in display order. Admins may pass
// ?all=true to include inactive ones.
func ListModules(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"activo": true}
	if r.URL.Query().Get("all") == "true" && authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "orden", Value: 1}})
	cursor, err := db.ModulesCollection.Find(r.Context(), filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch modules")
		return
	}
	defer cursor.Close(r.Context())

	modules := []models.Module{}
	if err := cursor.All(r.Context(), &modules); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode modules")
		return
	}
	utils.SendResponse(w, http.StatusOK, modules, "OK", nil)
}

func UpdateModule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var current models.Module
	err := db.ModulesCollection.FindOne(r.Context(), bson.M{"moduleid": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Module not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch module")
		return
	}

	merged := current
	if err := json.NewDecoder(r.Body).Decode(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	merged.ModuleID = current.ModuleID
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = time.Now()

	if err := validateModule(&merged); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.ModulesCollection.ReplaceOne(r.Context(), bson.M{"moduleid": id}, merged); err != nil {
		log.Errorf("Failed to update module %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update module")
		return
	}

	mq.Emit("module-updated", mq.Index{EntityType: "module", EntityId: id, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, merged, "Module updated successfully", nil)
}

// DeleteModule deactivates a module; its videos stay untouched so existing
// purchases keep working.
func DeleteModule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	res, err := db.ModulesCollection.UpdateOne(
		r.Context(),
		bson.M{"moduleid": id},
		bson.M{"$set": bson.M{"activo": false, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete module")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Module not found")
		return
	}

	mq.Emit("module-deactivated", mq.Index{EntityType: "module", EntityId: id, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Module deactivated", nil)
}

// ModuleVideos lists the active videos under a module in display order.
func ModuleVideos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	videos, err := ActiveModuleVideos(r, ps.ByName("moduleId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}
	utils.SendResponse(w, http.StatusOK, videos, "OK", nil)
}

// ActiveModuleVideos fetches a module's active videos sorted by display
// order. Shared with the pricing and payment flows.
func ActiveModuleVideos(r *http.Request, moduleID string) ([]models.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orden", Value: 1}})
	cursor, err := db.VideosCollection.Find(r.Context(), bson.M{"moduleid": moduleID, "activo": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	videos := []models.Video{}
	if err := cursor.All(r.Context(), &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
