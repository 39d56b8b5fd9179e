package pay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"milonga/config"
	"milonga/db"
	"milonga/entitlement"
	"milonga/models"
	"milonga/mq"
	"milonga/purchases"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// Handlers carries the gateway clients; built once in main.
type Handlers struct {
	PayPal      *PayPalClient
	MercadoPago *MercadoPagoClient
	FrontendURL string
	BackendURL  string
}

func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{
		PayPal:      NewPayPalClient(cfg),
		MercadoPago: NewMercadoPagoClient(cfg),
		FrontendURL: cfg.FrontendURL,
		BackendURL:  cfg.BackendURL,
	}
}

// alreadyOwns reports whether the user already has access to the item, using
// the same rules the entitlement resolver applies.
func alreadyOwns(ctx context.Context, userID, itemType, itemID string) (bool, error) {
	cursor, err := db.PurchasesCollection.Find(ctx, bson.M{
		"userid": userID,
		"status": models.PurchaseStatusCompleted,
	})
	if err != nil {
		return false, err
	}
	defer cursor.Close(ctx)

	var list []models.VideoPurchase
	if err := cursor.All(ctx, &list); err != nil {
		return false, err
	}

	if itemType == models.PurchaseTypeVideo {
		return entitlement.HasVideoAccess(list, itemID), nil
	}
	return entitlement.HasModuleAccess(list, itemID), nil
}

// resolveGrant determines the concrete video ids and owning module a capture
// unlocks. Module grants read the module's video list at capture time, so
// catalog changes between order and capture are reflected in the grant.
func resolveGrant(ctx context.Context, itemType, itemID string) (videoIDs []string, moduleID string, err error) {
	if itemType == models.PurchaseTypeVideo {
		videoIDs = []string{itemID}
		var video models.Video
		if err := db.VideosCollection.FindOne(ctx, bson.M{"videoid": itemID}).Decode(&video); err == nil {
			moduleID = video.ModuleID
		}
		return videoIDs, moduleID, nil
	}

	moduleID = itemID
	cursor, err := db.VideosCollection.Find(ctx, bson.M{"moduleid": moduleID})
	if err != nil {
		return nil, "", err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, "", err
	}
	for _, v := range videos {
		videoIDs = append(videoIDs, v.VideoID)
	}
	return videoIDs, moduleID, nil
}

func validItemType(t string) bool {
	return t == models.PurchaseTypeVideo || t == models.PurchaseTypeModule
}

// CreateVideoOrder starts a PayPal checkout for a video or module.
func (h *Handlers) CreateVideoOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	var body struct {
		ItemType  string  `json:"itemType"`
		ItemID    string  `json:"itemId"`
		ItemTitle string  `json:"itemTitle"`
		ItemPrice float64 `json:"itemPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !validItemType(body.ItemType) || body.ItemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item")
		return
	}

	owns, err := alreadyOwns(r.Context(), userID, body.ItemType, body.ItemID)
	if err != nil {
		log.Errorf("Failed to check ownership: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}
	if owns {
		msg := "Ya tienes acceso a este video"
		if body.ItemType == models.PurchaseTypeModule {
			msg = "Ya tienes acceso a este módulo"
		}
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	returnURL := fmt.Sprintf("%s/api/v1/capture-video-order?state=%s&itemType=%s&itemId=%s&price=%g",
		h.BackendURL, userID, body.ItemType, body.ItemID, body.ItemPrice)

	order := PayPalOrder{
		Intent: "CAPTURE",
		PurchaseUnits: []PayPalPurchaseUnit{{
			Amount: PayPalAmount{
				CurrencyCode: "USD",
				Value:        fmt.Sprintf("%.2f", body.ItemPrice),
			},
			Description: body.ItemTitle,
		}},
		ApplicationContext: PayPalAppContext{
			BrandName:   "Tango",
			LandingPage: "NO_PREFERENCE",
			UserAction:  "PAY_NOW",
			ReturnURL:   returnURL,
			CancelURL:   h.FrontendURL + "/cancel-payment",
		},
	}

	created, err := h.PayPal.CreateOrder(r.Context(), order)
	if err != nil {
		log.Errorf("PayPal order creation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, created)
}

// CaptureVideoOrder is PayPal's return redirect. The buyer's identity rides
// in the state parameter set at order-creation time.
func (h *Handlers) CaptureVideoOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	token := q.Get("token")
	userID := q.Get("state")
	itemType := q.Get("itemType")
	itemID := q.Get("itemId")
	price := q.Get("price")

	if token == "" || userID == "" || !validItemType(itemType) || itemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid capture parameters")
		return
	}

	transactionID, err := h.PayPal.CaptureOrder(r.Context(), token)
	if err != nil {
		log.Errorf("PayPal capture failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing payment")
		return
	}

	h.finalizePurchase(w, r, userID, itemType, itemID, price, models.PaymentMethodPayPal, transactionID)
}

// CreateVideoPreference starts a MercadoPago checkout. The body carries a
// list of items but only the first is honored.
func (h *Handlers) CreateVideoPreference(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Usuario no autenticado")
		return
	}

	var items []struct {
		ItemType  string  `json:"itemType"`
		ItemID    string  `json:"itemId"`
		Title     string  `json:"title"`
		UnitPrice float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil || len(items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No items provided")
		return
	}

	item := items[0]
	if !validItemType(item.ItemType) || item.ItemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item")
		return
	}

	owns, err := alreadyOwns(r.Context(), userID, item.ItemType, item.ItemID)
	if err != nil {
		log.Errorf("Failed to check ownership: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al procesar el pago")
		return
	}
	if owns {
		msg := "Ya tienes acceso a este video"
		if item.ItemType == models.PurchaseTypeModule {
			msg = "Ya tienes acceso a este módulo"
		}
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	successURL := fmt.Sprintf("%s/api/v1/capture-video-preference?state=%s&itemType=%s&itemId=%s&price=%g",
		h.BackendURL, userID, item.ItemType, item.ItemID, item.UnitPrice)

	pref := MPPreference{
		Items: []MPItem{{
			ID:         item.ItemID,
			Title:      item.Title,
			Quantity:   1,
			CurrencyID: "ARS",
			UnitPrice:  item.UnitPrice,
		}},
		BackURLs: MPBackURLs{
			Success: successURL,
			Failure: h.FrontendURL + "/cancel-payment",
			Pending: h.FrontendURL + "/pending-payment",
		},
		AutoReturn: "approved",
	}

	prefID, err := h.MercadoPago.CreatePreference(r.Context(), pref)
	if err != nil {
		log.Errorf("MercadoPago preference creation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error al procesar el pago")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": prefID})
}

// CaptureVideoPreference is MercadoPago's back_urls.success redirect.
func (h *Handlers) CaptureVideoPreference(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	userID := q.Get("state")
	paymentID := q.Get("payment_id")
	status := q.Get("status")
	itemType := q.Get("itemType")
	itemID := q.Get("itemId")
	price := q.Get("price")

	if status != "approved" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment not approved")
		return
	}
	if userID == "" || paymentID == "" || !validItemType(itemType) || itemID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid capture parameters")
		return
	}

	h.finalizePurchase(w, r, userID, itemType, itemID, price, models.PaymentMethodMercadoPago, paymentID)
}

// finalizePurchase writes the access grant and sends the buyer back to the
// frontend. Replayed captures hit the unique payment id index and get a 409.
func (h *Handlers) finalizePurchase(w http.ResponseWriter, r *http.Request, userID, itemType, itemID, price, method, transactionID string) {
	videoIDs, moduleID, err := resolveGrant(r.Context(), itemType, itemID)
	if err != nil {
		log.Errorf("Failed to resolve purchased content: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing payment")
		return
	}

	var priceValue float64
	fmt.Sscanf(price, "%g", &priceValue)

	purchase := models.VideoPurchase{
		UserID:        userID,
		PurchaseType:  itemType,
		ItemID:        itemID,
		ModuleID:      moduleID,
		VideoIDs:      videoIDs,
		Price:         priceValue,
		PaymentMethod: method,
		PaymentID:     transactionID,
		Status:        models.PurchaseStatusCompleted,
		PurchaseDate:  time.Now(),
	}

	if err := purchases.Create(r.Context(), &purchase); err != nil {
		if errors.Is(err, purchases.ErrDuplicatePayment) {
			log.Warnf("Replayed capture for payment %s ignored", transactionID)
			utils.RespondWithError(w, http.StatusConflict, "Payment already processed")
			return
		}
		log.Errorf("Failed to record purchase: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing payment")
		return
	}

	mq.Emit("purchase-completed", mq.Index{
		EntityType: "purchase",
		EntityId:   purchase.PurchaseID,
		ItemId:     itemID,
		ItemType:   itemType,
		Method:     "POST",
	})

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err == nil {
		go purchases.SendConfirmationEmail(user, purchase)
	}

	http.Redirect(w, r, h.FrontendURL+"/pagoAprobado", http.StatusFound)
}
