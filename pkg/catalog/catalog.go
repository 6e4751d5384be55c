// Package catalog holds the static tables the scoring engine reads: the adult
// question definitions, the reference curves by age and the child screen-time
// recommendation table. Tables are embedded, parsed once and never mutated.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"sync"
)

//go:embed data/*
var embedded embed.FS

// Embedded file names, relative to the catalog filesystem root.
const (
	QuestionsFile       = "questions.yaml"
	AdultReferenceFile  = "adult_reference.csv"
	ChildScreenTimeFile = "child_screen_time.csv"
	RecommendationsFile = "child_recommendations.yaml"
)

// Catalog bundles every static table.
type Catalog struct {
	Questions []Question

	// AdultReference is the average lifestyle score (0-100) by age, 18 to 80.
	AdultReference *ReferenceTable

	// ChildScreenTime is the average daily screen time in hours by age, 1 to 18.
	ChildScreenTime *ReferenceTable

	Recommendations *RecommendationTable

	byID map[string]int
}

// Question returns the definition for id.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Question is a single adult questionnaire entry.
type Question struct {
	ID    string  `yaml:"id" json:"id"`
	Label string  `yaml:"label" json:"label"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Step  float64 `yaml:"step" json:"step"`
	Unit  string  `yaml:"unit" json:"unit"`
}

// Midpoint is the default answer shown before the user moves the slider.
func (q Question) Midpoint() float64 {
	return math.Floor((q.Min + q.Max) / 2)
}

// Contains reports whether v lies within the declared domain.
func (q Question) Contains(v float64) bool {
	return v >= q.Min && v <= q.Max
}

// Steps enumerates every value reachable with the slider, min to max.
func (q Question) Steps() []float64 {
	if q.Step <= 0 {
		return []float64{q.Min, q.Max}
	}
	n := int(math.Round((q.Max - q.Min) / q.Step))
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, q.Min+float64(i)*q.Step)
	}
	return out
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog parsed from the embedded tables. The embedded
// data is part of the binary, so a parse failure is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		c, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses all tables from fsys, which must contain the four catalog files.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	f, err := fsys.Open(QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("opening questions: %w", err)
	}
	c.Questions, err = ParseQuestions(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing questions: %w", err)
	}

	f, err = fsys.Open(AdultReferenceFile)
	if err != nil {
		return nil, fmt.Errorf("opening adult reference: %w", err)
	}
	c.AdultReference, err = ParseReference(f, 1)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing adult reference: %w", err)
	}

	f, err = fsys.Open(ChildScreenTimeFile)
	if err != nil {
		return nil, fmt.Errorf("opening child screen time: %w", err)
	}
	// Stored in minutes, served in hours.
	c.ChildScreenTime, err = ParseReference(f, 1.0/60)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing child screen time: %w", err)
	}

	f, err = fsys.Open(RecommendationsFile)
	if err != nil {
		return nil, fmt.Errorf("opening recommendations: %w", err)
	}
	c.Recommendations, err = ParseRecommendations(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing recommendations: %w", err)
	}

	c.byID = make(map[string]int, len(c.Questions))
	for i, q := range c.Questions {
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question %q", q.ID)
		}
		c.byID[q.ID] = i
	}
	return c, nil
}
