package analysis

import (
	"fmt"
	"strings"
)

// Topic is the subject a consultant message was routed to.
type Topic string

const (
	TopicBodyShape    Topic = "body-shape"
	TopicFaceShape    Topic = "face-shape"
	TopicColor        Topic = "color"
	TopicProfessional Topic = "professional"
	TopicCasual       Topic = "casual"
	TopicTrend        Topic = "trend"
	TopicOutfit       Topic = "outfit"
	TopicGeneral      Topic = "general"
)

// requirement names which profile fields a topic's personalized template needs.
type requirement string

const (
	needsBody requirement = "body"
	needsFace requirement = "face"
	needsBoth requirement = "both"
	needsAny  requirement = "any"
)

type topicRule struct {
	Topic    Topic       `yaml:"topic"`
	Requires requirement `yaml:"requires"`
	Keywords []string    `yaml:"keywords"`
}

func (r topicRule) matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (r topicRule) satisfied(p Profile) bool {
	switch r.Requires {
	case needsBody:
		return p.BodyShape != nil
	case needsFace:
		return p.FaceShape != nil
	case needsBoth:
		return p.BodyShape != nil && p.FaceShape != nil
	case needsAny:
		return p.BodyShape != nil || p.FaceShape != nil
	default:
		return true
	}
}

// Consultation is a templated reply to a free-text question.
type Consultation struct {
	Topic      Topic  `json:"topic"`
	TemplateID string `json:"template_id"`
	Response   string `json:"response"`
}

// DetectTopic routes a message with the ordered keyword rules; the first rule with a
// matching keyword wins and unmatched messages are general.
func DetectTopic(message string) Topic {
	return ruleFor(strings.ToLower(message)).Topic
}

func ruleFor(lower string) topicRule {
	c := data().consultant
	for _, r := range c.Rules {
		if r.matches(lower) {
			return r
		}
	}
	return c.Fallback
}

// Consult answers a free-text styling question from the consultant templates.
func Consult(message string, p Profile) (Consultation, error) {
	if strings.TrimSpace(message) == "" {
		return Consultation{}, ErrEmptyMessage
	}
	rule := ruleFor(strings.ToLower(message))
	state := stateMissing
	if rule.satisfied(p) {
		state = stateKnown
	}
	id := TemplateID(string(rule.Topic), state)
	tmpl := data().consultant.Templates[id]

	return Consultation{
		Topic:      rule.Topic,
		TemplateID: id,
		Response:   render(tmpl, consultVars(rule.Topic, p)),
	}, nil
}

// Greeting renders the consultant's opening message for a user.
func Greeting(name string, p Profile) string {
	vars := consultVars(TopicGeneral, p)
	vars["{name}"] = name
	vars["{body_status}"] = "not completed your body shape analysis yet"
	if p.BodyShape != nil {
		vars["{body_status}"] = fmt.Sprintf("a %s body shape", p.BodyShape.Type)
	}
	vars["{face_status}"] = "and haven't analyzed your face shape yet"
	if p.FaceShape != nil {
		vars["{face_status}"] = fmt.Sprintf("and %s face shape", p.FaceShape.Type)
	}
	return render(data().consultant.Templates["greeting"], vars)
}

func consultVars(topic Topic, p Profile) map[string]string {
	vars := map[string]string{}
	var summary strings.Builder
	if p.BodyShape != nil {
		shape := p.BodyShape.Type
		vars["{body_shape}"] = string(shape)
		vars["{body_advice}"] = BodyShapeAdvice(shape, p.Gender)
		vars["{body_tip}"] = data().consultant.Tips[string(topic)][string(shape)]
		fmt.Fprintf(&summary, " (%s body shape)", shape)
	}
	if p.FaceShape != nil {
		shape := p.FaceShape.Type
		vars["{face_shape}"] = string(shape)
		vars["{face_advice}"] = FaceShapeAdvice(shape)
		fmt.Fprintf(&summary, " and %s face shape", shape)
	}
	vars["{profile_summary}"] = summary.String()
	return vars
}
