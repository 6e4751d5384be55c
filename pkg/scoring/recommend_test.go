package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func TestSelectorCapsAndDedupes(t *testing.T) {
	c := catalog.Default()
	sel := scoring.NewSelector(c, scoring.NewPicker(7))

	deviceSets := [][]string{
		nil,
		{"tv"},
		{"smartphone", "tablet"},
		{"smartphone", "tv", "gaming", "internet"},
		{"tv", "tv", "tv"},
	}
	for age := 1; age <= 18; age++ {
		for _, devices := range deviceSets {
			for _, screen := range []float64{0, 1, 3, 6, 12} {
				recs := sel.Select(age, screen, devices)
				assert.LessOrEqual(t, len(recs), scoring.MaxRecommendations)
				seen := map[string]bool{}
				for _, r := range recs {
					assert.False(t, seen[r], "duplicate %q", r)
					seen[r] = true
				}
			}
		}
	}
}

func TestSelectorSameFundamentalRulesAcrossDevices(t *testing.T) {
	c := catalog.Default()
	sel := scoring.NewSelector(c, scoring.NewPicker(1))
	rules := c.Recommendations.Bracket(8).FundamentalRules[:2]

	a := sel.Select(8, 3, []string{"tv"})
	b := sel.Select(8, 3, []string{"gaming", "internet"})

	assert.Equal(t, rules, a[:2])
	assert.Equal(t, rules, b[:2])
}

func TestSelectorClosingLine(t *testing.T) {
	c := catalog.Default()
	sel := scoring.NewSelector(c, scoring.FixedPicker(0))
	ref := c.ChildScreenTime.At(10)

	tests := []struct {
		name   string
		screen float64
		want   string
	}{
		{"well above reference", ref*1.5 + 0.1, "Réduisez immédiatement le temps d'écran de 50% - consultez un professionnel si nécessaire"},
		{"above reference", ref + 0.1, "Diminuez progressivement de 30 minutes par jour le temps d'écran total"},
		{"at reference", ref, "Appliquez la règle des 3 équilibres : 1h d'écran = 1h de sport + 1h de créativité + 1h de social"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := sel.Select(10, tc.screen, nil)
			require.Len(t, recs, 3)
			assert.Equal(t, tc.want, recs[2])
		})
	}
}

func TestSelectorUnknownDeviceFallsBackToInternet(t *testing.T) {
	c := catalog.Default()
	sel := scoring.NewSelector(c, scoring.FixedPicker(0))
	bracket := c.Recommendations.Bracket(8)

	var recs []string
	assert.NotPanics(t, func() { recs = sel.Select(8, 1, []string{"smartwatch"}) })
	require.Len(t, recs, 4)
	assert.Equal(t, bracket.DeviceAlternatives[catalog.Internet][0], recs[2])

	detailed := sel.Detailed(8, []string{"smartwatch", "vr-headset"})
	require.Len(t, detailed.Devices, 1)
	assert.Equal(t, catalog.Internet, detailed.Devices[0].Category)
	assert.Equal(t, bracket.Devices[catalog.Internet], detailed.Devices[0].Text)
}

func TestSelectorPickerPinsAlternatives(t *testing.T) {
	c := catalog.Default()
	bracket := c.Recommendations.Bracket(15)

	first := scoring.NewSelector(c, scoring.FixedPicker(0)).Select(15, 1, []string{"tv"})
	second := scoring.NewSelector(c, scoring.FixedPicker(1)).Select(15, 1, []string{"tv"})

	assert.Equal(t, bracket.DeviceAlternatives[catalog.Television][0], first[2])
	assert.Equal(t, bracket.DeviceAlternatives[catalog.Television][1], second[2])

	seeded := func() []string {
		return scoring.NewSelector(c, scoring.NewPicker(42)).Select(15, 5, []string{"smartphone", "gaming"})
	}
	assert.Equal(t, seeded(), seeded())
}

func TestDetailedRecommendations(t *testing.T) {
	c := catalog.Default()
	sel := scoring.NewSelector(c, nil)

	d := sel.Detailed(5, []string{"smartphone", "tablet", "tv"})
	assert.Equal(t, "3-6 ans", d.AgeGroup)
	require.Len(t, d.Devices, 2)
	assert.Equal(t, "Tablette/Smartphone", d.Devices[0].Device)
	assert.Equal(t, "Télévision", d.Devices[1].Device)
	assert.NotEmpty(t, d.General)
	assert.NotEmpty(t, d.Alternatives)
}

func TestAdultRecommendations(t *testing.T) {
	poor := scoring.AdultAnswers{Age: 40, ActivityHours: 1, SedentaryHours: 10, ScreenHours: 5, SleepHours: 5}
	recs := scoring.AdultRecommendations(poor, 30)
	assert.Equal(t, []string{
		"Augmentez votre activité physique à au moins 150 min/semaine",
		"Levez-vous 5 minutes toutes les heures de travail",
		"Limitez les écrans récréatifs à 2h maximum par jour",
		"Visez 7-8h de sommeil par nuit pour optimiser votre récupération",
	}, recs)

	good := midpointAdult()
	assert.Equal(t, []string{"Limitez les écrans récréatifs à 2h maximum par jour"}, scoring.AdultRecommendations(good, 73.5))

	good.ScreenHours = 2
	assert.Equal(t, []string{"Adoptez une routine quotidienne incluant 30 min d'activité physique"}, scoring.AdultRecommendations(good, 65))
	assert.Empty(t, scoring.AdultRecommendations(good, 85))
}
