package pricing

import (
	"net/http"

	"milonga/catalog"
	"milonga/db"
	"milonga/models"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CalculateModulePrice quotes the module's discounted price for the
// authenticated user.
func CalculateModulePrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	moduleID := ps.ByName("id")

	var module models.Module
	err := db.ModulesCollection.FindOne(r.Context(), bson.M{"moduleid": moduleID}).Decode(&module)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Módulo no encontrado")
		return
	} else if err != nil {
		log.Errorf("Failed to fetch module %s: %v", moduleID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al calcular el precio del módulo")
		return
	}

	moduleVideos, err := catalog.ActiveModuleVideos(r, moduleID)
	if err != nil {
		log.Errorf("Failed to fetch videos for module %s: %v", moduleID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al calcular el precio del módulo")
		return
	}

	cursor, err := db.PurchasesCollection.Find(r.Context(), bson.M{
		"userid": userID,
		"status": models.PurchaseStatusCompleted,
	})
	if err != nil {
		log.Errorf("Failed to fetch purchases for user %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al calcular el precio del módulo")
		return
	}
	defer cursor.Close(r.Context())

	var purchases []models.VideoPurchase
	if err := cursor.All(r.Context(), &purchases); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al calcular el precio del módulo")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Calculate(module, moduleVideos, purchases))
}
