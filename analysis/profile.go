package analysis

import "strings"

// Gender selects gendered copy and the archetype catalog.
type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

// ParseGender normalizes a raw gender value. Anything other than "male" reads as female,
// which is the catalog the app falls back to.
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(Male)) {
		return Male
	}
	return Female
}

// Profile is the read-only view of a user that the advice layer works from.
// Nil results mean the matching analysis has not been completed yet.
type Profile struct {
	Name             string
	Gender           Gender
	BodyShape        *BodyShapeResult
	FaceShape        *FaceShapeResult
	BMI              *BMIResult
	StylePreferences []string
	FitnessGoals     []string
	FavoriteColors   []string
}
