package models

import "time"

// Purchase types
const (
	PurchaseTypeVideo  = "video"
	PurchaseTypeModule = "module"
)

// Purchase statuses
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
	PurchaseStatusRefunded  = "refunded"
)

var PurchaseStatuses = []string{PurchaseStatusPending, PurchaseStatusCompleted, PurchaseStatusFailed, PurchaseStatusRefunded}

// Payment methods
const (
	PaymentMethodPayPal      = "paypal"
	PaymentMethodMercadoPago = "mercadopago"
)

// VideoPurchase is an access grant record. VideoIDs holds the concrete set
// of playback ids the purchase unlocks: one element for a video purchase,
// the module's full list for a module purchase. PaymentID is the external
// transaction id and carries a unique index.
type VideoPurchase struct {
	PurchaseID     string     `json:"purchaseid" bson:"purchaseid"`
	UserID         string     `json:"userId" bson:"userid"`
	PurchaseType   string     `json:"purchaseType" bson:"purchasetype"`
	ItemID         string     `json:"itemId" bson:"itemid"`
	ModuleID       string     `json:"moduleId,omitempty" bson:"moduleid,omitempty"`
	VideoIDs       []string   `json:"videoIds" bson:"videoids"`
	Price          float64    `json:"price" bson:"price"`
	PaymentMethod  string     `json:"paymentMethod" bson:"paymentmethod"`
	PaymentID      string     `json:"paymentId" bson:"paymentid"`
	Status         string     `json:"status" bson:"status"`
	PurchaseDate   time.Time  `json:"purchaseDate" bson:"purchasedate"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty" bson:"expirationdate,omitempty"`
}

// PurchasesSummary groups a user's completed purchases for the account view.
type PurchasesSummary struct {
	ModulesPurchased  []string            `json:"modulesPurchased"`
	VideosByModule    map[string][]string `json:"videosByModule"`
	TotalVideosAccess []string            `json:"totalVideosAccess"`
}
