package scoring

import (
	"fmt"
	"math"

	"github.com/lifescore/lifescore/pkg/catalog"
)

// AdultEngine evaluates the sedentary-lifestyle questionnaire.
type AdultEngine struct {
	catalog    *catalog.Catalog
	aggregator *Aggregator
	impacts    []AdultImpact
	picker     Picker
}

// NewAdultEngine creates an engine with the default anchors and impacts.
func NewAdultEngine(opts ...Option) *AdultEngine {
	o := buildOptions(opts)
	return &AdultEngine{
		catalog:    o.catalog,
		aggregator: NewAggregator(DefaultAnchors(), o.logger),
		impacts:    DefaultAdultImpacts(),
		picker:     o.picker,
	}
}

// Aggregator exposes the engine's aggregator for callers holding
// pre-bucketed answers.
func (e *AdultEngine) Aggregator() *Aggregator { return e.aggregator }

// Evaluate produces the complete adult result.
func (e *AdultEngine) Evaluate(a AdultAnswers) (*AdultResult, error) {
	if err := a.Validate(e.catalog); err != nil {
		return nil, err
	}

	buckets := NormalizeAll(a)
	breakdown := e.aggregator.ScoreDetailed(float64(a.Age), buckets)
	score := breakdown.Score

	result := &AdultResult{
		Answers:    a,
		Buckets:    buckets,
		TotalScore: score,
		HealthRisk: HealthRiskFor(score),
		Skipped:    breakdown.Skipped,
	}

	for _, impact := range e.impacts {
		result.Impacts = append(result.Impacts, impact.Evaluate(a))
	}

	average := e.catalog.AdultReference.At(a.Age)
	result.Comparison = Comparison{
		UserScore:         score,
		AverageScore:      average,
		BetterThanPercent: adultBetterThan(score, average),
		Series:            Project(e.catalog.AdultReference, a.Age, score, AdultProjection(a.Age)),
	}

	phrases := adultShockPhrases(a, score)
	result.ShockPhrase = phrases[e.picker.IntN(len(phrases))]
	result.Recommendations = AdultRecommendations(a, score)
	result.DetailedAnalysis = adultAnalysis(a, score)

	return result, nil
}

// HealthRiskFor maps an adult score to its risk band.
func HealthRiskFor(score float64) HealthRisk {
	switch {
	case score >= 80:
		return HealthRisk{Level: "Excellent", Description: "Votre mode de vie est exemplaire ! Continuez sur cette voie.", Color: "green"}
	case score >= 65:
		return HealthRisk{Level: "Bon", Description: "Votre mode de vie est globalement sain avec quelques points à améliorer.", Color: "blue"}
	case score >= 50:
		return HealthRisk{Level: "Moyen", Description: "Votre mode de vie présente des risques modérés pour votre santé.", Color: "yellow"}
	case score >= 35:
		return HealthRisk{Level: "Préoccupant", Description: "Votre mode de vie présente des risques importants. Il est temps d'agir !", Color: "orange"}
	default:
		return HealthRisk{Level: "Critique", Description: "Votre mode de vie présente des risques majeurs. Consultez un professionnel de santé.", Color: "red"}
	}
}

func adultShockPhrases(a AdultAnswers, score float64) []string {
	sitting := a.SedentaryHours
	zone := "dans la moyenne"
	if score < 60 {
		zone = "dans la zone de risque"
	}
	return []string{
		fmt.Sprintf("Avec %sh assis par jour, vous perdez %.0f mois d'espérance de vie par an.", formatNumber(sitting), math.Round(sitting*0.5)),
		fmt.Sprintf("Votre sédentarité équivaut à %.0f jours complets assis chaque année.", math.Round(sitting*365/24)),
		fmt.Sprintf("En 10 ans, vous passerez %.0f années complètes en position assise.", math.Round(sitting*365*10/24/365)),
		fmt.Sprintf("Votre score de %.0f/100 vous place %s pour votre âge.", math.Round(score), zone),
	}
}

func adultAnalysis(a AdultAnswers, score float64) string {
	analysis := fmt.Sprintf("Avec un score global de %.0f/100, ", math.Round(score))

	switch {
	case score >= 70:
		analysis += "vous avez un mode de vie globalement sain. "
	case score >= 50:
		analysis += "votre mode de vie présente quelques risques modérés. "
	default:
		analysis += "votre mode de vie nécessite des améliorations importantes. "
	}

	if a.SedentaryHours > 8 {
		analysis += fmt.Sprintf("Vos %sh d'assise quotidienne augmentent significativement vos risques cardiovasculaires. ", formatNumber(a.SedentaryHours))
	}
	if a.ActivityHours < 2 {
		analysis += "Votre faible niveau d'activité physique impacte négativement votre santé métabolique. "
	}
	if a.SleepHours < 7 {
		analysis += "Votre manque de sommeil affecte votre récupération et vos performances cognitives. "
	}

	return analysis
}
