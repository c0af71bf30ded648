package models

import (
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
)

// Measurements are the raw inputs behind the stored analyses
type Measurements struct {
	Height    float64                    `bson:"height,omitempty" json:"height,omitempty"`
	Weight    float64                    `bson:"weight,omitempty" json:"weight,omitempty"`
	Unit      analysis.UnitSystem        `bson:"unit,omitempty" json:"unit,omitempty"`
	Body      *analysis.BodyMeasurements `bson:"body,omitempty" json:"body,omitempty"`
	Face      *analysis.FaceMeasurements `bson:"face,omitempty" json:"face,omitempty"`
	UpdatedAt time.Time                  `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
