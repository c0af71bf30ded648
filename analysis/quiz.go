package analysis

import (
	"fmt"
	"sort"
)

// TopStyleCount is how many ranked archetypes are surfaced to the advice layer.
const TopStyleCount = 3

// Archetype is a named style direction with descriptive metadata.
type Archetype struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Personality []string `yaml:"personality" json:"personality"`
	Occasions   []string `yaml:"occasions" json:"occasions"`
	KeyPieces   []string `yaml:"key_pieces" json:"key_pieces"`
	Colors      []string `yaml:"colors" json:"colors"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// Option is one answer to a quiz question and the archetypes it votes for.
type Option struct {
	Value  string   `yaml:"value" json:"value"`
	Label  string   `yaml:"label" json:"label"`
	Styles []string `yaml:"styles" json:"styles"`
}

type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Options []Option `yaml:"options" json:"options"`
}

// Answers maps question id to the chosen option value.
type Answers map[string]string

// StyleScore is an archetype's vote count.
type StyleScore struct {
	ArchetypeID string `json:"archetype_id"`
	Score       int    `json:"score"`
}

// QuizQuestions returns the canonical quiz.
func QuizQuestions() []Question {
	return append([]Question(nil), data().quiz.Questions...)
}

// Archetypes returns the canonical archetype catalog for a gender, in tie-break order.
func Archetypes(g Gender) []Archetype {
	if g == Male {
		return append([]Archetype(nil), data().archetypes.Male...)
	}
	return append([]Archetype(nil), data().archetypes.Female...)
}

// FindArchetype looks an archetype up across both catalogs.
func FindArchetype(id string) (Archetype, bool) {
	for _, set := range [][]Archetype{data().archetypes.Female, data().archetypes.Male} {
		for _, a := range set {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Archetype{}, false
}

// ScoreStyles sums one vote per archetype listed on each chosen option. Only archetypes
// in the supplied set are counted. The result is ordered by descending score, with
// ties kept in the order of archetypes.
func ScoreStyles(answers Answers, questions []Question, archetypes []Archetype) ([]StyleScore, error) {
	index := make(map[string]int, len(archetypes))
	scores := make([]StyleScore, len(archetypes))
	for i, a := range archetypes {
		index[a.ID] = i
		scores[i] = StyleScore{ArchetypeID: a.ID}
	}

	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for questionID, value := range answers {
		q, ok := byID[questionID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, questionID)
		}
		opt, ok := q.option(value)
		if !ok {
			return nil, fmt.Errorf("%w: question %q has no option %q", ErrInvalidAnswer, questionID, value)
		}
		for _, style := range opt.Styles {
			if i, ok := index[style]; ok {
				scores[i].Score++
			}
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

// TopStyles returns up to n archetype ids from a ranked score table.
func TopStyles(scores []StyleScore, n int) []string {
	if n > len(scores) {
		n = len(scores)
	}
	if n < 0 {
		n = 0
	}
	ids := make([]string, 0, n)
	for _, s := range scores[:n] {
		ids = append(ids, s.ArchetypeID)
	}
	return ids
}

func (q Question) option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
