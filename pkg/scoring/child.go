package scoring

import (
	"fmt"
	"math"

	"github.com/lifescore/lifescore/pkg/catalog"
)

// ChildEngine evaluates the child screen-time questionnaire.
type ChildEngine struct {
	catalog  *catalog.Catalog
	impacts  []ChildImpact
	selector *Selector
	picker   Picker
}

// NewChildEngine creates an engine with the default impacts.
func NewChildEngine(opts ...Option) *ChildEngine {
	o := buildOptions(opts)
	return &ChildEngine{
		catalog:  o.catalog,
		impacts:  DefaultChildImpacts(),
		selector: NewSelector(o.catalog, o.picker),
		picker:   o.picker,
	}
}

// Selector exposes the recommendation selector.
func (e *ChildEngine) Selector() *Selector { return e.selector }

// Evaluate produces the complete child result.
func (e *ChildEngine) Evaluate(a ChildAnswers) (*ChildResult, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	reference := e.catalog.ChildScreenTime.At(a.Age)
	in := ChildInput{Age: a.Age, ScreenHours: a.ScreenHours, ReferenceHours: reference}
	score := ScreenTimeScore(a.ScreenHours, reference)

	result := &ChildResult{
		Answers:        a,
		ReferenceHours: reference,
		TotalScore:     score,
	}
	for _, impact := range e.impacts {
		result.Impacts = append(result.Impacts, impact.Evaluate(in))
	}

	result.Comparison = Comparison{
		UserScore:         score,
		AverageScore:      math.Round(reference * 20),
		BetterThanPercent: childBetterThan(a.ScreenHours, reference),
		Series:            Project(e.catalog.ChildScreenTime, a.Age, a.ScreenHours, ChildProjection()),
	}

	phrases := childShockPhrases(a)
	result.ShockPhrase = phrases[e.picker.IntN(len(phrases))]
	result.Recommendations = e.selector.Select(a.Age, a.ScreenHours, a.Devices)
	result.Detailed = e.selector.Detailed(a.Age, a.Devices)

	return result, nil
}

func childShockPhrases(a ChildAnswers) []string {
	years := float64(yearsUntil18(a.Age))
	var perNight float64
	if a.ScreenHours > 2 {
		perNight = (a.ScreenHours - 2) * 0.3
	}
	sleepLost := perNight * 365 * years
	familyYearly := a.ScreenHours * 0.7 * 365

	return []string{
		fmt.Sprintf("Votre enfant perdra %.0f années de sommeil à cause des écrans avant sa majorité.", math.Round(sleepLost/8760)),
		fmt.Sprintf("%.0f heures de liens familiaux perdues chaque année.", math.Round(familyYearly)),
		fmt.Sprintf("En %.0f ans, votre enfant passera %.0f jours complets devant un écran.", years, math.Round(a.ScreenHours*365*years/24)),
		fmt.Sprintf("Votre enfant perd l'équivalent de %.0f jours de temps familial par an.", math.Round(familyYearly/24)),
	}
}
