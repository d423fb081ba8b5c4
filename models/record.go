package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one contact entry stored in the constituency collection.
type Record struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VidhanSabha  string             `bson:"vidhan_sabha" json:"vidhan_sabha"`
	Block        string             `bson:"block" json:"block"`
	Panchayat    string             `bson:"panchayat" json:"panchayat"`
	Name         string             `bson:"name" json:"name"`
	Designation  string             `bson:"designation" json:"designation"`
	MobileNumber string             `bson:"mobile_number" json:"mobile_number"`
	Address      string             `bson:"address" json:"address"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// RecordInput carries raw form values before validation. All fields are
// strings exactly as the shell collected them.
type RecordInput struct {
	VidhanSabha  string `json:"vidhan_sabha"`
	Block        string `json:"block"`
	Panchayat    string `json:"panchayat"`
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
}
