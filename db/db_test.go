package db

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	if !IsDuplicateKeyError(dup) {
		t.Error("11000 write error must classify as duplicate key")
	}

	other := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}},
	}
	if IsDuplicateKeyError(other) {
		t.Error("non-11000 write error must not classify as duplicate key")
	}

	if IsDuplicateKeyError(nil) {
		t.Error("nil must not classify as duplicate key")
	}
	if IsDuplicateKeyError(errors.New("connection reset")) {
		t.Error("arbitrary error must not classify as duplicate key")
	}
}
