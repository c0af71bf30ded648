package models

import (
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consultation is one consultant question and the reply it got
type Consultation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Message    string             `bson:"message" json:"message"`
	Topic      analysis.Topic     `bson:"topic" json:"topic"`
	TemplateID string             `bson:"template_id" json:"template_id"`
	Response   string             `bson:"response" json:"response"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
