package purchases

import (
	"encoding/json"
	"net/http"
	"slices"

	"milonga/models"
	"milonga/mq"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListMyPurchases returns the authenticated user's purchase history.
func ListMyPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	list, err := ListByUser(r.Context(), userID, false)
	if err != nil {
		log.Errorf("Failed to list purchases for user %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	utils.SendResponse(w, http.StatusOK, list, "OK", nil)
}

// UpdatePurchaseStatus lets an admin move a purchase to another status,
// keyed by the external payment id. Used for refunds and chargebacks.
func UpdatePurchaseStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	paymentID := ps.ByName("paymentid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !slices.Contains(models.PurchaseStatuses, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	purchase, err := UpdateStatus(r.Context(), paymentID, body.Status)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Purchase not found")
		return
	} else if err != nil {
		log.Errorf("Failed to update purchase %s: %v", paymentID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update purchase")
		return
	}

	mq.Emit("purchase-status-updated", mq.Index{
		EntityType: "purchase",
		EntityId:   purchase.PurchaseID,
		ItemType:   body.Status,
		Method:     "PUT",
	})

	utils.SendResponse(w, http.StatusOK, purchase, "Purchase updated", nil)
}
