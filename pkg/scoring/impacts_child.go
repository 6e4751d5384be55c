package scoring

import "math"

// ScreenTimeScore rates daily screen time against the age reference: 100 at
// or below half the reference, 60 at the reference, 0 at twice the reference
// or more, linear in between.
func ScreenTimeScore(screenHours, reference float64) float64 {
	switch {
	case screenHours <= reference*0.5:
		return 100
	case screenHours >= reference*2:
		return 0
	case screenHours <= reference:
		ratio := (screenHours - reference*0.5) / (reference * 0.5)
		return math.Round(100 - ratio*40)
	default:
		ratio := (screenHours - reference) / reference
		return math.Round(60 - ratio*60)
	}
}

// Every child impact shares the screen-time curve; they differ in the
// figures and wording they derive from the same input.

// ChildSleepImpact estimates sleep lost to evening screens.
type ChildSleepImpact struct{}

func (m *ChildSleepImpact) Key() string  { return "sleep" }
func (m *ChildSleepImpact) Name() string { return "Sommeil" }

func (m *ChildSleepImpact) Evaluate(in ChildInput) ImpactResult {
	var perNight float64
	if in.ScreenHours > 2 {
		perNight = (in.ScreenHours - 2) * 0.3
	}
	yearly := perNight * 365
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: ScreenTimeScore(in.ScreenHours, in.ReferenceHours),
		Figures: map[string]float64{
			"hours_lost_per_night": perNight,
			"yearly_hours_lost":    yearly,
			"total_hours_until_18": yearly * float64(yearsUntil18(in.Age)),
		},
	}
}

// AttentionImpact estimates the drop in concentration.
type AttentionImpact struct{}

func (m *AttentionImpact) Key() string  { return "attention" }
func (m *AttentionImpact) Name() string { return "Attention" }

func (m *AttentionImpact) Evaluate(in ChildInput) ImpactResult {
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: ScreenTimeScore(in.ScreenHours, in.ReferenceHours),
		Figures: map[string]float64{
			"concentration_decrease": math.Min(in.ScreenHours/in.ReferenceHours*25, 70),
		},
	}
}

// AcademicImpact describes the expected effect on school results.
type AcademicImpact struct{}

func (m *AcademicImpact) Key() string  { return "academic" }
func (m *AcademicImpact) Name() string { return "Résultats scolaires" }

func (m *AcademicImpact) Evaluate(in ChildInput) ImpactResult {
	score := ScreenTimeScore(in.ScreenHours, in.ReferenceHours)
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: childBand(score, [4]string{
			"Impact minimal sur les résultats",
			"Baisse légère des résultats scolaires",
			"Impact modéré sur les performances",
			"Impact significatif sur la réussite scolaire",
		}),
	}
}

// FamilyImpact estimates family time displaced by screens.
type FamilyImpact struct{}

func (m *FamilyImpact) Key() string  { return "family" }
func (m *FamilyImpact) Name() string { return "Vie familiale" }

func (m *FamilyImpact) Evaluate(in ChildInput) ImpactResult {
	perDay := in.ScreenHours * 0.7
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: ScreenTimeScore(in.ScreenHours, in.ReferenceHours),
		Figures: map[string]float64{
			"lost_family_time_per_day": perDay,
			"yearly_family_time_lost":  perDay * 365,
		},
	}
}

// ChildSocialImpact describes the effect on relationships.
type ChildSocialImpact struct{}

func (m *ChildSocialImpact) Key() string  { return "social" }
func (m *ChildSocialImpact) Name() string { return "Relations sociales" }

func (m *ChildSocialImpact) Evaluate(in ChildInput) ImpactResult {
	score := ScreenTimeScore(in.ScreenHours, in.ReferenceHours)
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: childBand(score, [4]string{
			"Relations sociales préservées",
			"Légère diminution des interactions sociales",
			"Impact modéré sur les relations",
			"Isolement social préoccupant",
		}),
	}
}

// PhysicalHealthImpact describes the effect on physical health.
type PhysicalHealthImpact struct{}

func (m *PhysicalHealthImpact) Key() string  { return "physical" }
func (m *PhysicalHealthImpact) Name() string { return "Santé physique" }

func (m *PhysicalHealthImpact) Evaluate(in ChildInput) ImpactResult {
	score := ScreenTimeScore(in.ScreenHours, in.ReferenceHours)
	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: childBand(score, [4]string{
			"Santé physique préservée",
			"Légers effets sur la condition physique",
			"Impact modéré sur la santé",
			"Risques importants pour la santé",
		}),
	}
}

func yearsUntil18(age int) int {
	return max(0, 18-age)
}
