package scoring

import (
	"math"

	"github.com/lifescore/lifescore/pkg/catalog"
)

// ComparisonPoint is one age of a comparison series.
type ComparisonPoint struct {
	Age       int     `json:"age"`
	Reference float64 `json:"reference"`
	Projected float64 `json:"projected"`
}

// ComparisonSeries runs from the current age to the horizon.
type ComparisonSeries []ComparisonPoint

// ProjectOptions shapes a projection.
type ProjectOptions struct {
	Horizon int     // last age, inclusive
	Min     float64 // lower clamp for projected values
	Max     float64 // upper clamp; math.Inf(1) for none
	Round   bool    // round projected values to integers
}

// AdultProjection projects fifteen years ahead, capped at 80, on a 0-100 scale.
func AdultProjection(age int) ProjectOptions {
	return ProjectOptions{Horizon: min(80, age+15), Min: 0, Max: 100, Round: true}
}

// ChildProjection projects screen hours up to age 18.
func ChildProjection() ProjectOptions {
	return ProjectOptions{Horizon: 18, Min: 0, Max: math.Inf(1)}
}

// Project assumes the gap between current and the reference at currentAge
// holds for every later age. The entry at currentAge carries current itself.
func Project(ref *catalog.ReferenceTable, currentAge int, current float64, opts ProjectOptions) ComparisonSeries {
	deviation := current - ref.At(currentAge)
	horizon := max(opts.Horizon, currentAge)

	series := make(ComparisonSeries, 0, horizon-currentAge+1)
	for age := currentAge; age <= horizon; age++ {
		reference := ref.At(age)
		projected := current
		if age != currentAge {
			projected = clamp(reference+deviation, opts.Min, opts.Max)
		}
		if opts.Round {
			projected = math.Round(projected)
		}
		series = append(series, ComparisonPoint{Age: age, Reference: reference, Projected: projected})
	}
	return series
}

// adultBetterThan estimates the share of same-age adults scoring lower.
func adultBetterThan(score, average float64) int {
	var pct float64
	if score >= average {
		pct = 50 + (score-average)/40*40
	} else {
		pct = 50 - (average-score)/average*30
	}
	return int(math.Round(clamp(pct, 10, 90)))
}

// childBetterThan estimates the share of same-age children with more screen time.
func childBetterThan(screenHours, reference float64) int {
	if screenHours <= reference {
		return 60
	}
	return int(math.Round(math.Max(10, 100-(screenHours/reference-1)*30)))
}
