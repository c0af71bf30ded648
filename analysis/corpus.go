package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed corpus/*.yaml
var corpusFS embed.FS

type blockTemplate struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type adviceCorpus struct {
	BMIRecommendations map[string][]string `yaml:"bmi_recommendations"`
	HealthStyling      struct {
		Categories map[string][]string `yaml:"categories"`
		Goals      []goalStyling       `yaml:"goals"`
	} `yaml:"health_styling"`
	BodyDescriptions  map[string]map[string]string `yaml:"body_descriptions"`
	BodyAdvice        map[string]map[string]string `yaml:"body_advice"`
	FaceDescriptions  map[string]string            `yaml:"face_descriptions"`
	FaceAdvice        map[string]string            `yaml:"face_advice"`
	DefaultBodyAdvice string                       `yaml:"default_body_advice"`
	DefaultFaceAdvice string                       `yaml:"default_face_advice"`
	Templates         map[string]blockTemplate     `yaml:"templates"`
}

type goalStyling struct {
	Goal        string   `yaml:"goal"`
	Suggestions []string `yaml:"suggestions"`
}

type archetypeCorpus struct {
	Female []Archetype `yaml:"female"`
	Male   []Archetype `yaml:"male"`
}

type quizCorpus struct {
	Questions []Question `yaml:"questions"`
}

type outfitCorpus struct {
	Outfits      []Outfit      `yaml:"outfits"`
	ColorSeasons []ColorSeason `yaml:"color_seasons"`
}

type consultantCorpus struct {
	Rules     []topicRule                  `yaml:"rules"`
	Fallback  topicRule                    `yaml:"fallback"`
	Templates map[string]string            `yaml:"templates"`
	Tips      map[string]map[string]string `yaml:"tips"`
	Garments  []garmentRule                `yaml:"garments"`
}

type corpus struct {
	advice     adviceCorpus
	archetypes archetypeCorpus
	quiz       quizCorpus
	outfits    outfitCorpus
	consultant consultantCorpus
}

var (
	corpusOnce sync.Once
	loaded     *corpus
	corpusErr  error
)

// data returns the parsed embedded corpus. The corpus ships with the binary,
// so a parse failure is a build defect and panics.
func data() *corpus {
	corpusOnce.Do(func() {
		loaded, corpusErr = parseCorpus(corpusFS)
	})
	if corpusErr != nil {
		panic(fmt.Sprintf("analysis: %v", corpusErr))
	}
	return loaded
}

func parseCorpus(fsys fs.FS) (*corpus, error) {
	c := &corpus{}
	files := []struct {
		name string
		out  interface{}
	}{
		{"corpus/advice.yaml", &c.advice},
		{"corpus/archetypes.yaml", &c.archetypes},
		{"corpus/quiz.yaml", &c.quiz},
		{"corpus/outfits.yaml", &c.outfits},
		{"corpus/consultant.yaml", &c.consultant},
	}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(f.out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks that every enum value has the text the selectors look up.
func (c *corpus) validate() error {
	for _, cat := range BMICategories {
		if len(c.advice.BMIRecommendations[string(cat)]) < 4 {
			return fmt.Errorf("corpus: bmi category %q needs at least 4 recommendations", cat)
		}
	}
	for _, shape := range BodyShapes {
		for _, g := range []Gender{Female, Male} {
			if c.advice.BodyDescriptions[string(shape)][string(g)] == "" {
				return fmt.Errorf("corpus: missing %s description for body shape %q", g, shape)
			}
			if c.advice.BodyAdvice[string(shape)][string(g)] == "" {
				return fmt.Errorf("corpus: missing %s advice for body shape %q", g, shape)
			}
		}
	}
	for _, shape := range FaceShapes {
		if c.advice.FaceDescriptions[string(shape)] == "" || c.advice.FaceAdvice[string(shape)] == "" {
			return fmt.Errorf("corpus: missing text for face shape %q", shape)
		}
	}
	for _, kind := range adviceKinds {
		for _, state := range []string{stateKnown, stateMissing} {
			if _, ok := c.advice.Templates[TemplateID(string(kind), state)]; !ok {
				return fmt.Errorf("corpus: missing block template %q", TemplateID(string(kind), state))
			}
		}
	}
	if len(c.archetypes.Female) == 0 || len(c.archetypes.Male) == 0 {
		return fmt.Errorf("corpus: archetype catalogs must not be empty")
	}
	if len(c.quiz.Questions) == 0 {
		return fmt.Errorf("corpus: quiz has no questions")
	}
	rules := append(append([]topicRule{}, c.consultant.Rules...), c.consultant.Fallback)
	for _, r := range rules {
		for _, state := range []string{stateKnown, stateMissing} {
			if _, ok := c.consultant.Templates[TemplateID(string(r.Topic), state)]; !ok {
				return fmt.Errorf("corpus: missing consultant template %q", TemplateID(string(r.Topic), state))
			}
		}
	}
	return nil
}
