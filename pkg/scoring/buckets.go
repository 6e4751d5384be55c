package scoring

import "fmt"

// Bucket is a discrete label covering a range of raw answers.
type Bucket string

// Bucket labels. A label is only meaningful together with its question; the
// same text (for example "0") is reused by several questions.
const (
	BucketZero     Bucket = "0"
	BucketOne      Bucket = "1"
	Bucket1to2     Bucket = "1-2"
	Bucket2to3     Bucket = "2-3"
	Bucket3to4     Bucket = "3-4"
	Bucket3to5     Bucket = "3-5"
	Bucket4to6     Bucket = "4-6"
	Bucket5to6     Bucket = "5-6"
	Bucket6to8     Bucket = "6-8"
	Bucket7        Bucket = "7"
	Bucket7to10    Bucket = "7-10"
	Bucket9to10    Bucket = "9-10"
	BucketOver10   Bucket = ">10"
	Bucket0to2     Bucket = "0-2"
	Bucket7to8     Bucket = "7-8"
	BucketAtLeast7 Bucket = "≥7"
	BucketH12Plus  Bucket = "≥12h"
	BucketH9to11   Bucket = "9-11h"
	BucketH6to8    Bucket = "6-8h"
	BucketH5OrLess Bucket = "≤5h"
	BucketH6Plus   Bucket = "≥6h"
	BucketH4to5    Bucket = "4-5h"
	BucketH2to3    Bucket = "2-3h"
	BucketH1OrLess Bucket = "≤1h"
	BucketH6       Bucket = "6h"
	BucketH7to8    Bucket = "7-8h"
	BucketH9       Bucket = "9h"
	BucketH10Plus  Bucket = "≥10h"
	BucketH0to1    Bucket = "0-1h"
	BucketH6to10   Bucket = "6-10h"
	BucketH11Plus  Bucket = "≥11h"
)

type bucketRule struct {
	match  func(v float64) bool
	bucket Bucket
}

func eq(x float64) func(float64) bool { return func(v float64) bool { return v == x } }
func le(x float64) func(float64) bool { return func(v float64) bool { return v <= x } }
func ge(x float64) func(float64) bool { return func(v float64) bool { return v >= x } }
func always(float64) bool             { return true }

// Rules are scanned top to bottom and the last rule of each list is a
// catch-all, so every real value lands in exactly one bucket. Values between
// integer steps fall into the bucket of the next upper bound.
var selfRating = []bucketRule{
	{le(2), Bucket0to2},
	{le(4), Bucket3to4},
	{le(6), Bucket5to6},
	{le(8), Bucket7to8},
	{always, Bucket9to10},
}

var bucketRules = map[QuestionID][]bucketRule{
	ActivityHours: {
		{eq(0), BucketZero},
		{le(1), BucketOne},
		{le(3), Bucket2to3},
		{le(6), Bucket4to6},
		{le(10), Bucket7to10},
		{always, BucketOver10},
	},
	ActivityDays: {
		{eq(0), BucketZero},
		{le(2), Bucket1to2},
		{le(4), Bucket3to4},
		{le(6), Bucket5to6},
		{always, Bucket7},
	},
	ActivityIntensity: {
		{eq(0), BucketZero},
		{le(2), Bucket1to2},
		{le(5), Bucket3to5},
		{le(8), Bucket6to8},
		{always, Bucket9to10},
	},
	SedentaryHours: {
		{ge(12), BucketH12Plus},
		{ge(9), BucketH9to11},
		{ge(6), BucketH6to8},
		{always, BucketH5OrLess},
	},
	ScreenHours: {
		{ge(6), BucketH6Plus},
		{ge(4), BucketH4to5},
		{ge(2), BucketH2to3},
		{always, BucketH1OrLess},
	},
	SleepHours: {
		{le(5), BucketH5OrLess},
		{le(6), BucketH6},
		{le(8), BucketH7to8},
		{le(9), BucketH9},
		{always, BucketH10Plus},
	},
	SleepQuality: selfRating,
	EnergyLevel:  selfRating,
	StressLevel:  selfRating,
	SocialActivities: {
		{eq(0), BucketZero},
		{le(1), BucketOne},
		{le(3), Bucket2to3},
		{le(6), Bucket4to6},
		{always, BucketAtLeast7},
	},
	OutdoorHours: {
		{le(1), BucketH0to1},
		{le(3), BucketH2to3},
		{le(5), BucketH4to5},
		{le(10), BucketH6to10},
		{always, BucketH11Plus},
	},
}

// Normalize maps a raw answer to its bucket. The question set is closed, so
// an unknown id is a programming error and panics.
func Normalize(id QuestionID, v float64) Bucket {
	rules, ok := bucketRules[id]
	if !ok {
		panic(fmt.Sprintf("scoring: no bucket rules for question %q", id))
	}
	for _, r := range rules {
		if r.match(v) {
			return r.bucket
		}
	}
	return rules[len(rules)-1].bucket
}

// NormalizeAll buckets every adult answer.
func NormalizeAll(a AdultAnswers) BucketedAnswers {
	out := make(BucketedAnswers, len(AdultQuestions))
	for _, id := range AdultQuestions {
		v, _ := a.Value(id)
		out[id] = Normalize(id, v)
	}
	return out
}
