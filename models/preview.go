package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PreviewCompleted = "completed"
	PreviewFailed    = "failed"
)

// OutfitPreview is a rendered image of the user wearing a catalog outfit
type OutfitPreview struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	OutfitID          string             `bson:"outfit_id" json:"outfit_id"`
	PersonImageKey    string             `bson:"person_image_key" json:"person_image_key"`
	GeneratedImageKey string             `bson:"generated_image_key" json:"generated_image_key"` // S3 object key
	GeneratedImageURL string             `bson:"-" json:"generated_image_url,omitempty"`         // presigned on read
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	IsDeleted         bool               `bson:"is_deleted" json:"-"` // Soft delete flag
}
