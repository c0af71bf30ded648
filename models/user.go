package models

import (
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user and their stored analyses
type User struct {
	ID           primitive.ObjectID        `bson:"_id,omitempty" json:"id"`
	Name         string                    `bson:"name" json:"name"`
	Email        string                    `bson:"email" json:"email"`
	Password     string                    `bson:"password" json:"-"` // Password is not returned in JSON
	Gender       string                    `bson:"gender,omitempty" json:"gender,omitempty"`
	PhotoKey     string                    `bson:"photo_key,omitempty" json:"photo_key,omitempty"` // S3 key of the latest uploaded photo
	Measurements Measurements              `bson:"measurements" json:"measurements"`
	BodyShape    *analysis.BodyShapeResult `bson:"body_shape,omitempty" json:"body_shape,omitempty"`
	FaceShape    *analysis.FaceShapeResult `bson:"face_shape,omitempty" json:"face_shape,omitempty"`
	BMI          *analysis.BMIResult       `bson:"bmi,omitempty" json:"bmi,omitempty"`
	Preferences  Preferences               `bson:"preferences" json:"preferences"`
	CreatedAt    time.Time                 `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                 `bson:"updated_at" json:"updated_at"`
}

// Preferences are the user-editable style settings
type Preferences struct {
	StylePreferences []string `bson:"style_preferences" json:"style_preferences"` // archetype ids, best first
	FitnessGoals     []string `bson:"fitness_goals" json:"fitness_goals"`
	FavoriteColors   []string `bson:"favorite_colors" json:"favorite_colors"`
	Occasions        []string `bson:"occasions" json:"occasions"`
	Brands           []string `bson:"brands" json:"brands"`
}

// Profile returns the read-only view the advice layer works from
func (u *User) Profile() analysis.Profile {
	return analysis.Profile{
		Name:             u.Name,
		Gender:           analysis.ParseGender(u.Gender),
		BodyShape:        u.BodyShape,
		FaceShape:        u.FaceShape,
		BMI:              u.BMI,
		StylePreferences: append([]string(nil), u.Preferences.StylePreferences...),
		FitnessGoals:     append([]string(nil), u.Preferences.FitnessGoals...),
		FavoriteColors:   append([]string(nil), u.Preferences.FavoriteColors...),
	}
}
