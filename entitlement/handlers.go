package entitlement

import (
	"net/http"

	"milonga/authz"
	"milonga/db"
	"milonga/models"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

func userPurchases(r *http.Request, userID string) ([]models.VideoPurchase, error) {
	cursor, err := db.PurchasesCollection.Find(r.Context(), bson.M{
		"userid": userID,
		"status": models.PurchaseStatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	var purchases []models.VideoPurchase
	if err := cursor.All(r.Context(), &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func allVideoIDs(r *http.Request, filter bson.M) ([]string, error) {
	cursor, err := db.VideosCollection.Find(r.Context(), filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	var videos []models.Video
	if err := cursor.All(r.Context(), &videos); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}
	return ids, nil
}

// GetVideoAccess lists every video id the user can watch. Admins get the
// whole catalog without consulting the purchase ledger.
func GetVideoAccess(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	if authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		ids, err := allVideoIDs(r, bson.M{})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch access")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"videoIds": ids, "isAdmin": true})
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		log.Errorf("Failed to fetch purchases for user %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch access")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"videoIds": AccessibleVideoIDs(purchases), "isAdmin": false})
}

// CheckVideoAccess answers whether the user may watch one video.
func CheckVideoAccess(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}
	videoID := ps.ByName("id")

	if authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"hasAccess": true, "isAdmin": true})
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check access")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"hasAccess": HasVideoAccess(purchases, videoID),
		"isAdmin":   false,
	})
}

// CheckModuleAccess answers whether the user bought the whole module.
func CheckModuleAccess(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}
	moduleID := ps.ByName("id")

	if authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"hasAccess": true, "isAdmin": true})
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check access")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"hasAccess": HasModuleAccess(purchases, moduleID),
		"isAdmin":   false,
	})
}

// GetUserModules lists the module ids the user has purchase-level access to.
// Admins get every module.
func GetUserModules(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	if authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		cursor, err := db.ModulesCollection.Find(r.Context(), bson.M{})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch modules")
			return
		}
		defer cursor.Close(r.Context())

		var modules []models.Module
		if err := cursor.All(r.Context(), &modules); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode modules")
			return
		}
		ids := make([]string, 0, len(modules))
		for _, m := range modules {
			ids = append(ids, m.ModuleID)
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"moduleIds": ids, "isAdmin": true})
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch modules")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"moduleIds": AccessibleModuleIDs(purchases), "isAdmin": false})
}

// GetUserVideosInModule lists the videos of one module the user can watch.
func GetUserVideosInModule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}
	moduleID := ps.ByName("id")

	if authz.IsAdmin(utils.GetRolesFromRequest(r)) {
		ids, err := allVideoIDs(r, bson.M{"moduleid": moduleID})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch videos")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"moduleId": moduleID, "videoIds": ids, "isAdmin": true})
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}

	seen := make(map[string]bool)
	videoIDs := []string{}
	for _, p := range purchases {
		if p.ModuleID != moduleID {
			continue
		}
		for _, vid := range p.VideoIDs {
			if !seen[vid] {
				seen[vid] = true
				videoIDs = append(videoIDs, vid)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"moduleId": moduleID, "videoIds": videoIDs, "isAdmin": false})
}

// GetPurchasesSummary returns the grouped access view for the account page.
func GetPurchasesSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	purchases, err := userPurchases(r, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Summarize(purchases))
}
