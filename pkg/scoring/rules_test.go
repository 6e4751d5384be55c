package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name       string
		at18, at80 float64
		age        float64
		want       float64
	}{
		{"at 18", 1.0, 3.5, 18, 1.0},
		{"at 80", 1.0, 3.5, 80, 3.5},
		{"midpoint", 2.0, 4.0, 49, 3.0},
		{"rounds to one decimal", 5.0, 2.8, 30, 4.6},
		{"flat", 3, 3, 55, 3},
		{"extrapolates above 80", 2.0, 4.0, 111, 5.0},
		{"extrapolates below 18", 2.0, 4.0, -13, 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scoring.Interpolate(tc.at18, tc.at80, tc.age))
		})
	}
}

func TestBuildRuleTableBounds(t *testing.T) {
	for age := 0; age <= 120; age += 5 {
		table := scoring.BuildRuleTable(float64(age))
		require.Len(t, table, len(scoring.AdultQuestions), "age %d", age)
		for id, buckets := range table {
			for b, p := range buckets {
				assert.GreaterOrEqual(t, p, 0.0, "age %d %s/%s", age, id, b)
				assert.LessOrEqual(t, p, scoring.MaxPoints, "age %d %s/%s", age, id, b)
			}
		}
	}
}

func TestBuildRuleTableAgeInvariantRatings(t *testing.T) {
	young := scoring.BuildRuleTable(18)
	old := scoring.BuildRuleTable(80)
	for _, id := range []scoring.QuestionID{scoring.SleepQuality, scoring.EnergyLevel, scoring.StressLevel} {
		assert.Equal(t, young[id], old[id], "%s should not depend on age", id)
	}
}

func TestBuildRuleTableStressInverted(t *testing.T) {
	table := scoring.BuildRuleTable(40)
	low, _ := table.Points(scoring.StressLevel, scoring.Bucket0to2)
	high, _ := table.Points(scoring.StressLevel, scoring.Bucket9to10)
	assert.Equal(t, 5.0, low)
	assert.Equal(t, 0.0, high)
}

func TestBuildRuleTableInterpolatesPerAge(t *testing.T) {
	table := scoring.BuildRuleTable(30)

	p, ok := table.Points(scoring.ActivityHours, scoring.Bucket7to10)
	require.True(t, ok)
	assert.Equal(t, 4.6, p)

	p, ok = table.Points(scoring.ScreenHours, scoring.BucketH6Plus)
	require.True(t, ok)
	assert.Equal(t, 0.4, p)

	_, ok = table.Points(scoring.ActivityHours, scoring.BucketH6Plus)
	assert.False(t, ok)
	_, ok = table.Points("unknown", scoring.BucketZero)
	assert.False(t, ok)
}

// Every value a slider can produce, plus the half steps in between, must
// land in a bucket the rule table knows for that question.
func TestBucketTotality(t *testing.T) {
	c := catalog.Default()
	table := scoring.BuildRuleTable(40)

	for _, id := range scoring.AdultQuestions {
		q, ok := c.Question(string(id))
		require.True(t, ok, "catalog misses %s", id)

		for v := q.Min; v <= q.Max; v += 0.5 {
			b := scoring.Normalize(id, v)
			_, ok := table.Points(id, b)
			assert.True(t, ok, "%s=%v mapped to unknown bucket %q", id, v, b)
		}
	}
}

func TestNormalizeBoundaries(t *testing.T) {
	tests := []struct {
		id   scoring.QuestionID
		v    float64
		want scoring.Bucket
	}{
		{scoring.ActivityHours, 0, scoring.BucketZero},
		{scoring.ActivityHours, 1, scoring.BucketOne},
		{scoring.ActivityHours, 1.5, scoring.Bucket2to3},
		{scoring.ActivityHours, 10, scoring.Bucket7to10},
		{scoring.ActivityHours, 11, scoring.BucketOver10},
		{scoring.ActivityDays, 7, scoring.Bucket7},
		{scoring.ActivityIntensity, 5, scoring.Bucket3to5},
		{scoring.SedentaryHours, 12, scoring.BucketH12Plus},
		{scoring.SedentaryHours, 11, scoring.BucketH9to11},
		{scoring.SedentaryHours, 5, scoring.BucketH5OrLess},
		{scoring.ScreenHours, 1, scoring.BucketH1OrLess},
		{scoring.ScreenHours, 6, scoring.BucketH6Plus},
		{scoring.SleepHours, 6, scoring.BucketH6},
		{scoring.SleepHours, 9, scoring.BucketH9},
		{scoring.SleepHours, 10, scoring.BucketH10Plus},
		{scoring.StressLevel, 9, scoring.Bucket9to10},
		{scoring.SocialActivities, 7, scoring.BucketAtLeast7},
		{scoring.OutdoorHours, 11, scoring.BucketH11Plus},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, scoring.Normalize(tc.id, tc.v), "%s=%v", tc.id, tc.v)
	}
}

func TestNormalizeUnknownQuestionPanics(t *testing.T) {
	assert.Panics(t, func() { scoring.Normalize("favourite_colour", 3) })
}
