package scoring

import "math"

// Interpolate returns the value at age on the line through (18, at18) and
// (80, at80), rounded to one decimal. Ages outside 18..80 extrapolate.
func Interpolate(at18, at80, age float64) float64 {
	t := (age - 18) / 62
	return round1(at18 + t*(at80-at18))
}

// RuleTable maps each question and bucket to the points it earns.
type RuleTable map[QuestionID]map[Bucket]float64

// Points looks up the points for a bucket.
func (t RuleTable) Points(id QuestionID, b Bucket) (float64, bool) {
	buckets, ok := t[id]
	if !ok {
		return 0, false
	}
	p, ok := buckets[b]
	return p, ok
}

// BuildRuleTable builds the rule table for age from DefaultAnchors.
func BuildRuleTable(age float64) RuleTable {
	return DefaultAnchors().Build(age)
}

// Build interpolates every anchor at age. Extrapolated values are clamped to
// [0, MaxPoints].
func (a AnchorTable) Build(age float64) RuleTable {
	table := make(RuleTable, len(a))
	for id, anchors := range a {
		buckets := make(map[Bucket]float64, len(anchors))
		for _, ba := range anchors {
			buckets[ba.Bucket] = clamp(Interpolate(ba.Anchor.At18, ba.Anchor.At80, age), 0, MaxPoints)
		}
		table[id] = buckets
	}
	return table
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
