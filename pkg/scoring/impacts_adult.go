package scoring

import "fmt"

const baseline = 50.0

// PhysicalImpact scores activity volume, frequency and time spent seated.
type PhysicalImpact struct{}

func (m *PhysicalImpact) Key() string  { return "physical" }
func (m *PhysicalImpact) Name() string { return "Santé physique" }

func (m *PhysicalImpact) Evaluate(a AdultAnswers) ImpactResult {
	score := baseline

	switch {
	case a.ActivityHours >= 5:
		score += 20
	case a.ActivityHours >= 3:
		score += 10
	case a.ActivityHours <= 1:
		score -= 20
	}

	switch {
	case a.SedentaryHours >= 10:
		score -= 25
	case a.SedentaryHours >= 8:
		score -= 15
	case a.SedentaryHours <= 6:
		score += 10
	}

	switch {
	case a.ActivityDays >= 5:
		score += 15
	case a.ActivityDays >= 3:
		score += 5
	case a.ActivityDays <= 1:
		score -= 15
	}

	score = clamp(score, 0, 100)

	// Effects test the raw answers on their own thresholds, not the score.
	var risks []string
	if a.ActivityHours < 2 {
		risks = append(risks, "Risque cardiovasculaire +40%")
	}
	if a.SedentaryHours > 8 {
		risks = append(risks, "Risque de diabète +25%")
	}
	if a.ActivityDays < 3 {
		risks = append(risks, "Perte de masse musculaire -5%")
	}

	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: adultBand(score, [5]string{
			"Excellente condition physique",
			"Bonne condition physique",
			"Condition physique moyenne",
			"Condition physique dégradée",
			"Condition physique préoccupante",
		}),
		Effects: risks,
	}
}

// MentalImpact scores stress, energy, screen exposure and time outdoors.
type MentalImpact struct{}

func (m *MentalImpact) Key() string  { return "mental" }
func (m *MentalImpact) Name() string { return "Santé mentale" }

func (m *MentalImpact) Evaluate(a AdultAnswers) ImpactResult {
	score := baseline
	score += (10 - a.StressLevel) * 3
	score += a.EnergyLevel * 3

	switch {
	case a.ScreenHours >= 5:
		score -= 15
	case a.ScreenHours >= 3:
		score -= 8
	}

	switch {
	case a.OutdoorHours >= 5:
		score += 10
	case a.OutdoorHours <= 2:
		score -= 10
	}

	score = clamp(score, 0, 100)

	var effects []string
	if a.StressLevel > 7 {
		effects = append(effects, "Risque de burnout élevé")
	}
	if a.EnergyLevel < 5 {
		effects = append(effects, "Fatigue chronique")
	}
	if a.ScreenHours > 4 {
		effects = append(effects, "Surcharge informationnelle")
	}

	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: adultBand(score, [5]string{
			"Excellent équilibre mental",
			"Bon équilibre mental",
			"Équilibre mental fragile",
			"Déséquilibre mental notable",
			"Détresse psychologique",
		}),
		Effects: effects,
	}
}

// SocialImpact scores social activities, screen exposure and time outdoors.
type SocialImpact struct{}

func (m *SocialImpact) Key() string  { return "social" }
func (m *SocialImpact) Name() string { return "Vie sociale" }

func (m *SocialImpact) Evaluate(a AdultAnswers) ImpactResult {
	score := baseline

	switch {
	case a.SocialActivities >= 5:
		score += 25
	case a.SocialActivities >= 3:
		score += 10
	case a.SocialActivities <= 1:
		score -= 20
	}
	if a.ScreenHours >= 5 {
		score -= 15
	}
	if a.OutdoorHours >= 5 {
		score += 10
	}

	score = clamp(score, 0, 100)

	lost := max(0, (5-a.SocialActivities)*2)

	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: adultBand(score, [5]string{
			"Vie sociale épanouie",
			"Vie sociale satisfaisante",
			"Vie sociale limitée",
			"Isolement social modéré",
			"Isolement social important",
		}),
		Effects: []string{fmt.Sprintf("%sh de moins par semaine que la moyenne", formatNumber(lost))},
		Figures: map[string]float64{"lost_social_hours_per_week": lost},
	}
}

// SleepImpact scores sleep duration, sleep quality and evening screens.
type SleepImpact struct{}

func (m *SleepImpact) Key() string  { return "sleep" }
func (m *SleepImpact) Name() string { return "Sommeil" }

func (m *SleepImpact) Evaluate(a AdultAnswers) ImpactResult {
	score := baseline

	// First match wins: 9h and more already earns the >= 6 bonus.
	switch {
	case a.SleepHours >= 7 && a.SleepHours <= 8:
		score += 20
	case a.SleepHours >= 6:
		score += 10
	case a.SleepHours <= 5:
		score -= 25
	}

	score += a.SleepQuality * 4
	if a.ScreenHours >= 4 {
		score -= 15
	}

	score = clamp(score, 0, 100)

	var effects []string
	if a.SleepHours < 7 {
		effects = append(effects, "Manque de sommeil chronique")
	}
	if a.SleepQuality < 5 {
		effects = append(effects, "Sommeil non réparateur")
	}
	if a.ScreenHours > 3 {
		effects = append(effects, "Écrans perturbent l'endormissement")
	}

	return ImpactResult{
		Key:   m.Key(),
		Name:  m.Name(),
		Score: score,
		Description: adultBand(score, [5]string{
			"Sommeil excellent",
			"Sommeil de qualité",
			"Sommeil correct",
			"Sommeil perturbé",
			"Sommeil très dégradé",
		}),
		Effects: effects,
	}
}
