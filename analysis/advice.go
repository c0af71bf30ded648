package analysis

import (
	"fmt"
	"strings"
)

// AdviceKind names one section of the advice report.
type AdviceKind string

const (
	KindBody  AdviceKind = "body"
	KindFace  AdviceKind = "face"
	KindBMI   AdviceKind = "bmi"
	KindStyle AdviceKind = "style"
)

var adviceKinds = []AdviceKind{KindBody, KindFace, KindBMI, KindStyle}

const (
	stateKnown   = "known"
	stateMissing = "missing"
)

// TemplateID is the corpus key for a kind (or consultant topic) in a given state.
func TemplateID(kind, state string) string {
	return kind + "." + state
}

// AdviceBlock is one rendered section.
type AdviceBlock struct {
	Kind       AdviceKind `json:"kind"`
	TemplateID string     `json:"template_id"`
	Title      string     `json:"title"`
	Lines      []string   `json:"lines"`
}

// Advice is the ordered set of blocks for a profile.
type Advice struct {
	Blocks   []AdviceBlock `json:"blocks"`
	Complete bool          `json:"complete"`
}

// SelectAdvice renders body, face, BMI and style blocks for a profile. A section whose
// analysis is missing renders its "complete your analysis" fallback instead of failing.
func SelectAdvice(p Profile) Advice {
	blocks := []AdviceBlock{
		bodyBlock(p),
		faceBlock(p),
		bmiBlock(p),
		styleBlock(p),
	}
	complete := true
	for _, b := range blocks {
		if strings.HasSuffix(b.TemplateID, "."+stateMissing) {
			complete = false
		}
	}
	return Advice{Blocks: blocks, Complete: complete}
}

// Text concatenates the blocks into a plain-text report.
func (a Advice) Text() string {
	var sb strings.Builder
	for i, b := range a.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.Title)
		sb.WriteString("\n")
		for _, line := range b.Lines {
			sb.WriteString("- ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func bodyBlock(p Profile) AdviceBlock {
	if p.BodyShape == nil {
		return missingBlock(KindBody)
	}
	shape := p.BodyShape.Type
	return knownBlock(KindBody, map[string]string{"{body_shape}": string(shape)},
		BodyShapeDescription(shape, p.Gender),
		BodyShapeAdvice(shape, p.Gender),
	)
}

func faceBlock(p Profile) AdviceBlock {
	if p.FaceShape == nil {
		return missingBlock(KindFace)
	}
	shape := p.FaceShape.Type
	return knownBlock(KindFace, map[string]string{"{face_shape}": string(shape)},
		FaceShapeDescription(shape),
		FaceShapeAdvice(shape),
	)
}

func bmiBlock(p Profile) AdviceBlock {
	if p.BMI == nil {
		return missingBlock(KindBMI)
	}
	lines := append(BMIRecommendations(p.BMI.Category), HealthConsciousStyling(p.BMI.Category, p.FitnessGoals)...)
	return knownBlock(KindBMI, map[string]string{
		"{bmi_value}":    fmt.Sprintf("%.1f", p.BMI.Value),
		"{bmi_category}": string(p.BMI.Category),
	}, lines...)
}

func styleBlock(p Profile) AdviceBlock {
	var lines []string
	for _, id := range p.StylePreferences {
		if a, ok := FindArchetype(id); ok {
			lines = append(lines, a.Name+": "+a.Description)
		}
	}
	if len(lines) == 0 {
		return missingBlock(KindStyle)
	}
	return knownBlock(KindStyle, nil, lines...)
}

func knownBlock(kind AdviceKind, vars map[string]string, lines ...string) AdviceBlock {
	id := TemplateID(string(kind), stateKnown)
	t := data().advice.Templates[id]
	return AdviceBlock{Kind: kind, TemplateID: id, Title: render(t.Title, vars), Lines: lines}
}

func missingBlock(kind AdviceKind) AdviceBlock {
	id := TemplateID(string(kind), stateMissing)
	t := data().advice.Templates[id]
	return AdviceBlock{Kind: kind, TemplateID: id, Title: t.Title, Lines: []string{t.Text}}
}

// BodyShapeDescription describes a body shape in gendered terms.
func BodyShapeDescription(shape BodyShape, g Gender) string {
	return data().advice.BodyDescriptions[string(shape)][string(ParseGender(string(g)))]
}

// BodyShapeAdvice returns styling advice for a body shape, or a generic line for unknown shapes.
func BodyShapeAdvice(shape BodyShape, g Gender) string {
	if s := data().advice.BodyAdvice[string(shape)][string(ParseGender(string(g)))]; s != "" {
		return s
	}
	return data().advice.DefaultBodyAdvice
}

func FaceShapeDescription(shape FaceShape) string {
	return data().advice.FaceDescriptions[string(shape)]
}

// FaceShapeAdvice returns accessory and neckline advice, or a generic line for unknown shapes.
func FaceShapeAdvice(shape FaceShape) string {
	if s := data().advice.FaceAdvice[string(shape)]; s != "" {
		return s
	}
	return data().advice.DefaultFaceAdvice
}

// HealthConsciousStyling combines BMI-band styling with suggestions for the user's
// fitness goals. Goals are applied in corpus order.
func HealthConsciousStyling(category BMICategory, goals []string) []string {
	hs := data().advice.HealthStyling
	out := append([]string(nil), hs.Categories[string(category)]...)
	chosen := make(map[string]bool, len(goals))
	for _, g := range goals {
		chosen[g] = true
	}
	for _, g := range hs.Goals {
		if chosen[g.Goal] {
			out = append(out, g.Suggestions...)
		}
	}
	return out
}

func render(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
