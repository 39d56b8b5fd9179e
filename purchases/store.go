// Package purchases owns the purchase ledger: writes from the payment
// capture flows, reads for the account views, and the PDF receipt.
package purchases

import (
	"context"
	"fmt"
	"time"

	"milonga/db"
	"milonga/models"
	"milonga/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicatePayment signals a replayed gateway callback: a purchase with
// the same external payment id already exists.
var ErrDuplicatePayment = fmt.Errorf("purchase with this payment id already exists")

// Create inserts a completed purchase row. The unique index on paymentid is
// the idempotency barrier against replayed captures.
func Create(ctx context.Context, p *models.VideoPurchase) error {
	if p.PurchaseID == "" {
		p.PurchaseID = "p-" + utils.GetUUID()
	}
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = time.Now()
	}

	_, err := db.PurchasesCollection.InsertOne(ctx, p)
	return insertErr(err)
}

// insertErr translates a unique-index violation on paymentid into
// ErrDuplicatePayment so capture handlers can answer replays with a conflict.
func insertErr(err error) error {
	if err == nil {
		return nil
	}
	if db.IsDuplicateKeyError(err) {
		return ErrDuplicatePayment
	}
	return err
}

// FindByPaymentID looks a purchase up by its external transaction id.
func FindByPaymentID(ctx context.Context, paymentID string) (*models.VideoPurchase, error) {
	var p models.VideoPurchase
	err := db.PurchasesCollection.FindOne(ctx, bson.M{"paymentid": paymentID}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus changes the status of the purchase keyed by paymentID.
func UpdateStatus(ctx context.Context, paymentID, status string) (*models.VideoPurchase, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.VideoPurchase
	err := db.PurchasesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"paymentid": paymentID},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns a user's purchases, newest first. Pass onlyCompleted to
// restrict to access-granting rows.
func ListByUser(ctx context.Context, userID string, onlyCompleted bool) ([]models.VideoPurchase, error) {
	filter := bson.M{"userid": userID}
	if onlyCompleted {
		filter["status"] = models.PurchaseStatusCompleted
	}

	opts := options.Find().SetSort(bson.D{{Key: "purchasedate", Value: -1}})
	cursor, err := db.PurchasesCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	purchases := []models.VideoPurchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// AlreadyOwns reports whether a completed purchase of the item exists.
func AlreadyOwns(ctx context.Context, userID, purchaseType, itemID string) (bool, error) {
	err := db.PurchasesCollection.FindOne(ctx, bson.M{
		"userid":       userID,
		"purchasetype": purchaseType,
		"itemid":       itemID,
		"status":       models.PurchaseStatusCompleted,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
