package scoring

// Anchor holds the points a bucket earns at age 18 and at age 80. Points for
// other ages are interpolated linearly between the two.
type Anchor struct {
	At18 float64
	At80 float64
}

func flat(v float64) Anchor          { return Anchor{At18: v, At80: v} }
func span(at18, at80 float64) Anchor { return Anchor{At18: at18, At80: at80} }

// BucketAnchor pairs a bucket with its anchor.
type BucketAnchor struct {
	Bucket Bucket
	Anchor Anchor
}

// AnchorTable lists, per question, the anchors of every bucket.
type AnchorTable map[QuestionID][]BucketAnchor

// DefaultAnchors returns the standard adult scoring anchors.
func DefaultAnchors() AnchorTable {
	selfRating := []BucketAnchor{
		{Bucket0to2, flat(0)},
		{Bucket3to4, flat(1)},
		{Bucket5to6, flat(3)},
		{Bucket7to8, flat(4)},
		{Bucket9to10, flat(5)},
	}

	return AnchorTable{
		// Benefit of volume shifts toward moderate amounts with age.
		ActivityHours: {
			{BucketZero, flat(0)},
			{BucketOne, span(1.0, 3.5)},
			{Bucket2to3, span(2.5, 5.0)},
			{Bucket4to6, span(4.5, 4.2)},
			{Bucket7to10, span(5.0, 2.8)},
			{BucketOver10, span(3.2, 1.5)},
		},
		ActivityDays: {
			{BucketZero, flat(0)},
			{Bucket1to2, span(1.0, 5.0)},
			{Bucket3to4, span(3.5, 5.0)},
			{Bucket5to6, span(5.0, 3.0)},
			{Bucket7, span(5.0, 2.0)},
		},
		ActivityIntensity: {
			{BucketZero, flat(0)},
			{Bucket1to2, span(1.0, 2.0)},
			{Bucket3to5, span(3.0, 5.0)},
			{Bucket6to8, span(5.0, 3.0)},
			{Bucket9to10, span(5.0, 2.0)},
		},
		SedentaryHours: {
			{BucketH12Plus, flat(0)},
			{BucketH9to11, span(1.0, 3.0)},
			{BucketH6to8, span(4.0, 5.0)},
			{BucketH5OrLess, flat(5)},
		},
		ScreenHours: {
			{BucketH6Plus, span(0.0, 2.0)},
			{BucketH4to5, span(2.0, 4.0)},
			{BucketH2to3, flat(5)},
			{BucketH1OrLess, flat(5)},
		},
		SleepHours: {
			{BucketH5OrLess, flat(0)},
			{BucketH6, span(2.0, 4.0)},
			{BucketH7to8, flat(5)},
			{BucketH9, span(3.0, 5.0)},
			{BucketH10Plus, span(1.0, 4.0)},
		},
		SleepQuality: selfRating,
		EnergyLevel:  selfRating,
		// Inverted: more stress earns fewer points.
		StressLevel: {
			{Bucket0to2, flat(5)},
			{Bucket3to4, flat(4)},
			{Bucket5to6, flat(3)},
			{Bucket7to8, flat(1)},
			{Bucket9to10, flat(0)},
		},
		SocialActivities: {
			{BucketZero, flat(0)},
			{BucketOne, span(1.0, 2.0)},
			{Bucket2to3, span(3.0, 4.0)},
			{Bucket4to6, flat(5)},
			{BucketAtLeast7, flat(5)},
		},
		OutdoorHours: {
			{BucketH0to1, flat(0)},
			{BucketH2to3, span(2.0, 4.0)},
			{BucketH4to5, span(3.0, 5.0)},
			{BucketH6to10, flat(5)},
			{BucketH11Plus, span(5.0, 4.0)},
		},
	}
}
