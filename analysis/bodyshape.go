package analysis

import "math"

// BodyShape is a heuristic silhouette label.
type BodyShape string

const (
	Hourglass        BodyShape = "hourglass"
	Pear             BodyShape = "pear"
	Apple            BodyShape = "apple"
	Rectangle        BodyShape = "rectangle"
	InvertedTriangle BodyShape = "inverted-triangle"
)

// BodyShapes lists every body shape label.
var BodyShapes = []BodyShape{Hourglass, Pear, Apple, Rectangle, InvertedTriangle}

// BodyMeasurements is a full body measurement set in one unit system.
// Shoulders, Height and Weight are collected but not used by ClassifyBodyShape.
type BodyMeasurements struct {
	Bust      float64    `bson:"bust" json:"bust"`
	Waist     float64    `bson:"waist" json:"waist"`
	Hips      float64    `bson:"hips" json:"hips"`
	Shoulders float64    `bson:"shoulders,omitempty" json:"shoulders,omitempty"`
	Height    float64    `bson:"height,omitempty" json:"height,omitempty"`
	Weight    float64    `bson:"weight,omitempty" json:"weight,omitempty"`
	Unit      UnitSystem `bson:"unit,omitempty" json:"unit,omitempty"`
}

// BodyShapeResult is the label chosen by the first matching rule and that rule's confidence.
type BodyShapeResult struct {
	Type       BodyShape `bson:"type" json:"type"`
	Confidence float64   `bson:"confidence" json:"confidence"`
}

// Validate reports the first girth measurement that is missing or not positive.
func (m BodyMeasurements) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"bust", m.Bust}, {"waist", m.Waist}, {"hips", m.Hips}} {
		if err := requirePositive(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// ClassifyBodyShape labels a silhouette from bust, waist and hip girths.
// Rules are checked in order and the first match wins; equal girths therefore
// classify as apple, not rectangle.
func ClassifyBodyShape(m BodyMeasurements) (BodyShapeResult, error) {
	if err := m.Validate(); err != nil {
		return BodyShapeResult{}, err
	}
	bust, waist, hips := m.Bust, m.Waist, m.Hips

	bustWaistRatio := bust / waist
	hipWaistRatio := hips / waist
	bustHipDiff := math.Abs(bust - hips)

	switch {
	case bustWaistRatio >= 1.25 && hipWaistRatio >= 1.25 && bustHipDiff <= 2:
		return BodyShapeResult{Type: Hourglass, Confidence: 0.90}, nil
	case hips > bust && hipWaistRatio >= 1.2:
		return BodyShapeResult{Type: Pear, Confidence: 0.85}, nil
	case bust > hips && bustWaistRatio >= 1.2:
		return BodyShapeResult{Type: InvertedTriangle, Confidence: 0.85}, nil
	case waist >= bust*0.9 && waist >= hips*0.9:
		return BodyShapeResult{Type: Apple, Confidence: 0.80}, nil
	default:
		return BodyShapeResult{Type: Rectangle, Confidence: 0.75}, nil
	}
}
