package scoring

// AdultImpact is implemented by every adult sub-impact calculator.
type AdultImpact interface {
	// Key returns the machine-readable impact identifier.
	Key() string
	// Name returns the display name.
	Name() string
	// Evaluate computes the impact from raw answers.
	Evaluate(a AdultAnswers) ImpactResult
}

// ChildInput is what the child calculators read.
type ChildInput struct {
	Age            int
	ScreenHours    float64
	ReferenceHours float64 // average daily screen time for Age
}

// ChildImpact is implemented by every child sub-impact calculator.
type ChildImpact interface {
	Key() string
	Name() string
	Evaluate(in ChildInput) ImpactResult
}

// DefaultAdultImpacts returns the physical, mental, social and sleep
// calculators in display order.
func DefaultAdultImpacts() []AdultImpact {
	return []AdultImpact{
		&PhysicalImpact{},
		&MentalImpact{},
		&SocialImpact{},
		&SleepImpact{},
	}
}

// DefaultChildImpacts returns the six child calculators in display order.
func DefaultChildImpacts() []ChildImpact {
	return []ChildImpact{
		&ChildSleepImpact{},
		&AttentionImpact{},
		&AcademicImpact{},
		&FamilyImpact{},
		&ChildSocialImpact{},
		&PhysicalHealthImpact{},
	}
}

// adultBand picks a description by the 80/65/50/35 thresholds.
func adultBand(score float64, texts [5]string) string {
	switch {
	case score >= 80:
		return texts[0]
	case score >= 65:
		return texts[1]
	case score >= 50:
		return texts[2]
	case score >= 35:
		return texts[3]
	default:
		return texts[4]
	}
}

// childBand picks a description by the 80/60/40 thresholds.
func childBand(score float64, texts [4]string) string {
	switch {
	case score >= 80:
		return texts[0]
	case score >= 60:
		return texts[1]
	case score >= 40:
		return texts[2]
	default:
		return texts[3]
	}
}
