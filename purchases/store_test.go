package purchases

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertErrTranslatesDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: videopurchases index: unique_paymentid",
		}},
	}
	if got := insertErr(dup); !errors.Is(got, ErrDuplicatePayment) {
		t.Errorf("insertErr(duplicate key) = %v, want ErrDuplicatePayment", got)
	}

	plain := errors.New("connection reset")
	if got := insertErr(plain); !errors.Is(got, plain) {
		t.Errorf("insertErr(plain error) = %v, want the error untouched", got)
	}

	if insertErr(nil) != nil {
		t.Error("insertErr(nil) must be nil")
	}
}
