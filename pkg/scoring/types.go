// Package scoring implements the lifescore quiz engine: adult lifestyle and
// child screen-time answers in, a 0-100 score with sub-impacts, comparison
// series and recommendations out. Everything here is pure computation over
// the static tables of package catalog.
package scoring

import (
	"errors"

	"github.com/lifescore/lifescore/pkg/catalog"
)

// ErrInvalidAnswers wraps every validation failure returned by the engines.
var ErrInvalidAnswers = errors.New("invalid answers")

// MaxPoints is the best value a single answer can earn.
const MaxPoints = 5.0

// MaxRecommendations caps every recommendation list.
const MaxRecommendations = 4

// QuestionID identifies an adult questionnaire entry.
type QuestionID string

const (
	ActivityHours     QuestionID = "activity_hours"
	ActivityDays      QuestionID = "activity_days"
	ActivityIntensity QuestionID = "activity_intensity"
	SedentaryHours    QuestionID = "sedentary_hours"
	ScreenHours       QuestionID = "screen_hours"
	SleepHours        QuestionID = "sleep_hours"
	SleepQuality      QuestionID = "sleep_quality"
	EnergyLevel       QuestionID = "energy_level"
	StressLevel       QuestionID = "stress_level"
	SocialActivities  QuestionID = "social_activities"
	OutdoorHours      QuestionID = "outdoor_hours"
)

// AdultQuestions is the canonical question order. Aggregation walks answers
// in this order so floating-point accumulation is reproducible.
var AdultQuestions = []QuestionID{
	ActivityHours,
	ActivityDays,
	ActivityIntensity,
	SedentaryHours,
	ScreenHours,
	SleepHours,
	SleepQuality,
	EnergyLevel,
	StressLevel,
	SocialActivities,
	OutdoorHours,
}

// AdultAnswers is one completed adult questionnaire.
type AdultAnswers struct {
	Age               int     `json:"age"`
	ActivityHours     float64 `json:"activity_hours"`
	ActivityDays      float64 `json:"activity_days"`
	ActivityIntensity float64 `json:"activity_intensity"`
	SedentaryHours    float64 `json:"sedentary_hours"`
	ScreenHours       float64 `json:"screen_hours"`
	SleepHours        float64 `json:"sleep_hours"`
	SleepQuality      float64 `json:"sleep_quality"`
	EnergyLevel       float64 `json:"energy_level"`
	StressLevel       float64 `json:"stress_level"`
	SocialActivities  float64 `json:"social_activities"`
	OutdoorHours      float64 `json:"outdoor_hours"`
}

// Value returns the raw answer for id.
func (a AdultAnswers) Value(id QuestionID) (float64, bool) {
	switch id {
	case ActivityHours:
		return a.ActivityHours, true
	case ActivityDays:
		return a.ActivityDays, true
	case ActivityIntensity:
		return a.ActivityIntensity, true
	case SedentaryHours:
		return a.SedentaryHours, true
	case ScreenHours:
		return a.ScreenHours, true
	case SleepHours:
		return a.SleepHours, true
	case SleepQuality:
		return a.SleepQuality, true
	case EnergyLevel:
		return a.EnergyLevel, true
	case StressLevel:
		return a.StressLevel, true
	case SocialActivities:
		return a.SocialActivities, true
	case OutdoorHours:
		return a.OutdoorHours, true
	}
	return 0, false
}

// Set assigns the raw answer for id. It reports false for unknown ids.
func (a *AdultAnswers) Set(id QuestionID, v float64) bool {
	switch id {
	case ActivityHours:
		a.ActivityHours = v
	case ActivityDays:
		a.ActivityDays = v
	case ActivityIntensity:
		a.ActivityIntensity = v
	case SedentaryHours:
		a.SedentaryHours = v
	case ScreenHours:
		a.ScreenHours = v
	case SleepHours:
		a.SleepHours = v
	case SleepQuality:
		a.SleepQuality = v
	case EnergyLevel:
		a.EnergyLevel = v
	case StressLevel:
		a.StressLevel = v
	case SocialActivities:
		a.SocialActivities = v
	case OutdoorHours:
		a.OutdoorHours = v
	default:
		return false
	}
	return true
}

// MidpointAnswers fills every question with its catalog midpoint.
func MidpointAnswers(c *catalog.Catalog, age int) AdultAnswers {
	a := AdultAnswers{Age: age}
	for _, id := range AdultQuestions {
		if q, ok := c.Question(string(id)); ok {
			a.Set(id, q.Midpoint())
		}
	}
	return a
}

// BucketedAnswers maps each question to its normalized bucket.
type BucketedAnswers map[QuestionID]Bucket

// ChildAnswers is one completed child screen-time questionnaire.
type ChildAnswers struct {
	Age         int      `json:"age"`
	ScreenHours float64  `json:"screen_hours"`
	Devices     []string `json:"devices"`
}

// ImpactResult is the output of a single sub-impact calculator.
type ImpactResult struct {
	Key         string             `json:"key"`  // machine key: "physical"
	Name        string             `json:"name"` // display name: "Santé physique"
	Score       float64            `json:"score"`
	Description string             `json:"description"`
	Effects     []string           `json:"effects,omitempty"`
	Figures     map[string]float64 `json:"figures,omitempty"`
}

// HealthRisk is the overall risk band of an adult score.
type HealthRisk struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Comparison places a score against the reference curve.
type Comparison struct {
	UserScore         float64          `json:"user_score"`
	AverageScore      float64          `json:"average_score"`
	BetterThanPercent int              `json:"better_than_percent"`
	Series            ComparisonSeries `json:"series"`
}

// AdultResult is the complete adult evaluation. Immutable once computed.
type AdultResult struct {
	Answers          AdultAnswers    `json:"answers"`
	Buckets          BucketedAnswers `json:"buckets"`
	TotalScore       float64         `json:"total_score"`
	HealthRisk       HealthRisk      `json:"health_risk"`
	Impacts          []ImpactResult  `json:"impacts"`
	ShockPhrase      string          `json:"shock_phrase"`
	Comparison       Comparison      `json:"comparison"`
	Recommendations  []string        `json:"recommendations"`
	DetailedAnalysis string          `json:"detailed_analysis"`
	Skipped          []AnswerPoints  `json:"skipped,omitempty"`
}

// Impact returns the impact with the given key, or nil.
func (r *AdultResult) Impact(key string) *ImpactResult {
	return findImpact(r.Impacts, key)
}

// DeviceAdvice is the bracket text for one device category.
type DeviceAdvice struct {
	Category catalog.DeviceCategory `json:"category"`
	Device   string                 `json:"device"`
	Text     string                 `json:"text"`
}

// DetailedRecommendations is the long-form guidance for a child's bracket.
type DetailedRecommendations struct {
	AgeGroup     string         `json:"age_group"`
	Devices      []DeviceAdvice `json:"devices"`
	General      string         `json:"general"`
	Alternatives string         `json:"alternatives"`
}

// ChildResult is the complete child evaluation. Immutable once computed.
type ChildResult struct {
	Answers         ChildAnswers            `json:"answers"`
	ReferenceHours  float64                 `json:"reference_hours"`
	TotalScore      float64                 `json:"total_score"`
	Impacts         []ImpactResult          `json:"impacts"`
	ShockPhrase     string                  `json:"shock_phrase"`
	Comparison      Comparison              `json:"comparison"`
	Recommendations []string                `json:"recommendations"`
	Detailed        DetailedRecommendations `json:"detailed_recommendations"`
}

// Impact returns the impact with the given key, or nil.
func (r *ChildResult) Impact(key string) *ImpactResult {
	return findImpact(r.Impacts, key)
}

func findImpact(impacts []ImpactResult, key string) *ImpactResult {
	for i := range impacts {
		if impacts[i].Key == key {
			return &impacts[i]
		}
	}
	return nil
}
