package analysis

// FaceShape is a heuristic facial proportion label.
type FaceShape string

const (
	Oval    FaceShape = "oval"
	Round   FaceShape = "round"
	Square  FaceShape = "square"
	Heart   FaceShape = "heart"
	Diamond FaceShape = "diamond"
	Oblong  FaceShape = "oblong"
)

// FaceShapes lists every face shape label.
var FaceShapes = []FaceShape{Oval, Round, Square, Heart, Diamond, Oblong}

// FaceMeasurements holds the four facial measurements, all in the same unit.
type FaceMeasurements struct {
	FaceLength    float64 `bson:"face_length" json:"face_length"`
	FaceWidth     float64 `bson:"face_width" json:"face_width"`
	JawWidth      float64 `bson:"jaw_width" json:"jaw_width"`
	ForeheadWidth float64 `bson:"forehead_width" json:"forehead_width"`
}

type FaceShapeResult struct {
	Type       FaceShape `bson:"type" json:"type"`
	Confidence float64   `bson:"confidence" json:"confidence"`
}

// Validate reports the first measurement that is missing or not positive.
func (m FaceMeasurements) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"face_length", m.FaceLength},
		{"face_width", m.FaceWidth},
		{"jaw_width", m.JawWidth},
		{"forehead_width", m.ForeheadWidth},
	} {
		if err := requirePositive(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// ClassifyFaceShape labels a face from its length/width ratio and jaw/forehead widths.
func ClassifyFaceShape(m FaceMeasurements) (FaceShapeResult, error) {
	if err := m.Validate(); err != nil {
		return FaceShapeResult{}, err
	}
	lengthWidthRatio := m.FaceLength / m.FaceWidth

	switch {
	case lengthWidthRatio >= 1.5:
		if m.JawWidth < m.ForeheadWidth*0.8 {
			return FaceShapeResult{Type: Heart, Confidence: 0.85}, nil
		}
		return FaceShapeResult{Type: Oblong, Confidence: 0.80}, nil
	case lengthWidthRatio <= 1.1:
		if m.JawWidth >= m.ForeheadWidth*0.9 {
			return FaceShapeResult{Type: Round, Confidence: 0.85}, nil
		}
		return FaceShapeResult{Type: Square, Confidence: 0.80}, nil
	case m.JawWidth < m.ForeheadWidth*0.7 && m.FaceWidth < m.ForeheadWidth*0.8:
		return FaceShapeResult{Type: Diamond, Confidence: 0.80}, nil
	default:
		return FaceShapeResult{Type: Oval, Confidence: 0.90}, nil
	}
}
