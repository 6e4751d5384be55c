package scoring

import (
	"github.com/lifescore/lifescore/pkg/catalog"
)

// Closing recommendations for the child pipeline, by how far screen time
// sits above the age reference.
const (
	closingReduceNow     = "Réduisez immédiatement le temps d'écran de 50% - consultez un professionnel si nécessaire"
	closingReduceSlowly  = "Diminuez progressivement de 30 minutes par jour le temps d'écran total"
	closingThreeBalances = "Appliquez la règle des 3 équilibres : 1h d'écran = 1h de sport + 1h de créativité + 1h de social"
)

// fundamentalRuleCount is how many bracket rules open the list.
const fundamentalRuleCount = 2

// Selector picks child recommendations from the bracket table.
type Selector struct {
	table     *catalog.RecommendationTable
	reference *catalog.ReferenceTable
	picker    Picker
}

// NewSelector creates a selector over the catalog tables.
func NewSelector(c *catalog.Catalog, picker Picker) *Selector {
	if picker == nil {
		picker = randomPicker()
	}
	return &Selector{table: c.Recommendations, reference: c.ChildScreenTime, picker: picker}
}

// Select returns at most MaxRecommendations unique strings: the bracket's
// fundamental rules, one random alternative per device category used, then
// one closing line chosen by comparing screenHours to the age reference.
func (s *Selector) Select(age int, screenHours float64, devices []string) []string {
	bracket := s.table.Bracket(age)

	var recs []string
	recs = append(recs, bracket.FundamentalRules[:min(fundamentalRuleCount, len(bracket.FundamentalRules))]...)

	for _, category := range uniqueCategories(devices) {
		alts := bracket.DeviceAlternatives[category]
		if len(alts) == 0 {
			continue
		}
		recs = append(recs, alts[s.picker.IntN(len(alts))])
	}

	ref := s.reference.At(age)
	switch {
	case screenHours > ref*1.5:
		recs = append(recs, closingReduceNow)
	case screenHours > ref:
		recs = append(recs, closingReduceSlowly)
	default:
		recs = append(recs, closingThreeBalances)
	}

	return truncate(dedupe(recs), MaxRecommendations)
}

// Detailed returns the long-form text of the bracket for each device
// category used, deduplicated by category.
func (s *Selector) Detailed(age int, devices []string) DetailedRecommendations {
	bracket := s.table.Bracket(age)

	d := DetailedRecommendations{
		AgeGroup:     bracket.Label,
		General:      bracket.General,
		Alternatives: bracket.Alternatives,
	}
	for _, category := range uniqueCategories(devices) {
		d.Devices = append(d.Devices, DeviceAdvice{
			Category: category,
			Device:   category.Label(),
			Text:     bracket.Devices[category],
		})
	}
	return d
}

// AdultRecommendations applies the adult threshold rules in order, then adds
// one line for low scores, capped at MaxRecommendations.
func AdultRecommendations(a AdultAnswers, score float64) []string {
	var recs []string

	if a.ActivityHours < 3 {
		recs = append(recs, "Augmentez votre activité physique à au moins 150 min/semaine")
	}
	if a.SedentaryHours > 8 {
		recs = append(recs, "Levez-vous 5 minutes toutes les heures de travail")
	}
	if a.ScreenHours > 3 {
		recs = append(recs, "Limitez les écrans récréatifs à 2h maximum par jour")
	}
	if a.SleepHours < 7 {
		recs = append(recs, "Visez 7-8h de sommeil par nuit pour optimiser votre récupération")
	}
	if a.OutdoorHours < 3 {
		recs = append(recs, "Passez au moins 30 min par jour à l'extérieur")
	}
	if a.SocialActivities < 3 {
		recs = append(recs, "Planifiez au moins 3 activités sociales par semaine")
	}

	switch {
	case score < 50:
		recs = append(recs, "Consultez un professionnel de santé pour un accompagnement personnalisé")
	case score < 70:
		recs = append(recs, "Adoptez une routine quotidienne incluant 30 min d'activité physique")
	}

	return truncate(recs, MaxRecommendations)
}

func uniqueCategories(devices []string) []catalog.DeviceCategory {
	seen := make(map[catalog.DeviceCategory]bool)
	var out []catalog.DeviceCategory
	for _, d := range devices {
		c := catalog.ResolveDevice(d)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func dedupe(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func truncate(ss []string, n int) []string {
	if len(ss) > n {
		return ss[:n]
	}
	return ss
}
