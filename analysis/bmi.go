package analysis

import (
	"math"
	"time"
)

// BMICategory is the health band a BMI value falls into.
type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

// BMICategories lists the bands in ascending order.
var BMICategories = []BMICategory{Underweight, Normal, Overweight, Obese}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// HealthyBMIRange is reported with every result regardless of category.
var HealthyBMIRange = Range{Min: 18.5, Max: 24.9}

// BMIResult is the outcome of a BMI classification.
type BMIResult struct {
	Value           float64     `bson:"value" json:"value"`
	Category        BMICategory `bson:"category" json:"category"`
	HealthyRange    Range       `bson:"healthy_range" json:"healthy_range"`
	Recommendations []string    `bson:"recommendations" json:"recommendations"`
	LastUpdated     time.Time   `bson:"last_updated" json:"last_updated"`
}

// ClassifyBMI computes BMI from raw height and weight in the given unit system,
// stamping the result with the current time.
func ClassifyBMI(height, weight float64, unit UnitSystem) (BMIResult, error) {
	return ClassifyBMIAt(height, weight, unit, time.Now())
}

// ClassifyBMIAt is ClassifyBMI with an explicit timestamp.
func ClassifyBMIAt(height, weight float64, unit UnitSystem, at time.Time) (BMIResult, error) {
	if err := requirePositive("height", height); err != nil {
		return BMIResult{}, err
	}
	if err := requirePositive("weight", weight); err != nil {
		return BMIResult{}, err
	}
	heightM, weightKg, err := Normalize(height, weight, unit)
	if err != nil {
		return BMIResult{}, err
	}

	bmi := weightKg / (heightM * heightM)
	category := BMICategoryFor(bmi)

	return BMIResult{
		Value:           roundTenth(bmi),
		Category:        category,
		HealthyRange:    HealthyBMIRange,
		Recommendations: BMIRecommendations(category),
		LastUpdated:     at,
	}, nil
}

// BMICategoryFor bands a raw (unrounded) BMI value. Lower bounds are inclusive.
func BMICategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BMIRecommendations returns a copy of the ordered advice list for a category.
func BMIRecommendations(category BMICategory) []string {
	recs := data().advice.BMIRecommendations[string(category)]
	return append([]string(nil), recs...)
}

// roundTenth rounds half away from zero to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
