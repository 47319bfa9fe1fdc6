package rating

import (
	"errors"
	"math"
)

var ErrInvalidInput = errors.New("invalid rating input")

const (
	// MinExternal and MaxExternal bound the optional UTR-style external rating.
	MinExternal = 1.0
	MaxExternal = 16.5

	compositeCap = 70.0
	blendedCap   = 95.0
	maxRating    = 100.0

	maxYearsCounted = 14
)

// Inputs are the skill attributes a rating is derived from.
// ExternalRating is optional; when present it must lie in
// [MinExternal, MaxExternal] and carry at most two decimal places.
type Inputs struct {
	SkillTier                int      // 1 beginner, 2 intermediate, 3 advanced
	YearsPlayed              int
	HasCompetitiveExperience bool
	ExternalRating           *float64
}

// Rate maps skill inputs to a rating in [0, 100], rounded to two
// decimals. Identical inputs always produce the identical value.
func Rate(in Inputs) (float64, error) {
	if err := validate(in); err != nil {
		return 0, err
	}

	base := float64(in.SkillTier*5 + 3)

	years := in.YearsPlayed
	if years > maxYearsCounted {
		years = maxYearsCounted
	}
	experienceBonus := float64(years * 2)

	competitionBonus := 0.0
	if in.HasCompetitiveExperience {
		competitionBonus = 10.0
	}

	composite := base + experienceBonus + competitionBonus

	if in.ExternalRating == nil {
		return round2(math.Min(composite, compositeCap)), nil
	}

	external := *in.ExternalRating
	scaled := external / MaxExternal * maxRating

	if external >= 10 {
		return round2(math.Min(scaled, maxRating)), nil
	}

	// Below 10 the external signal is weak; blend it with the composite
	// score, weighted by how close it is to 10.
	w := math.Min(external/10, 1)
	blended := scaled*w + composite*(1-w)
	return round2(math.Min(blended, blendedCap)), nil
}

func validate(in Inputs) error {
	if in.SkillTier < 1 || in.SkillTier > 3 {
		return ErrInvalidInput
	}
	if in.YearsPlayed < 0 {
		return ErrInvalidInput
	}
	if in.ExternalRating != nil {
		v := *in.ExternalRating
		if v < MinExternal || v > MaxExternal {
			return ErrInvalidInput
		}
		// Exactly two decimal places of precision.
		if math.Abs(v*100-math.Round(v*100)) > 1e-9 {
			return ErrInvalidInput
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
