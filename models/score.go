package models

import "math"

// DailyActivities is the scoring engine input: two continuous measures plus
// the boolean flags a path may score. JunkFood is inverted — the flag records
// that junk food WAS eaten, and the bonus is awarded for keeping it false.
type DailyActivities struct {
	HomeCookedMeals     float64
	JunkFood            bool
	ExerciseMinutes     float64
	StrengthTraining    bool
	NoSpending          bool
	InvestedBitcoin     bool
	Meditation          bool
	Gratitude           bool
	ReadOrLearned       bool
	EnvironmentalAction bool
}

// ScoreResult is the computed daily score. Total is always within
// [0, MaxScore]; Breakdown maps activity key to points earned, omitting
// zero-point entries.
type ScoreResult struct {
	Total      int                `json:"total"`
	MaxScore   int                `json:"max_score"`
	Percentage float64            `json:"percentage"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// CalculateDailyScore converts one day's activities and a path's weight
// configuration into a bounded point total. Pure function, no I/O.
//
// Continuous activities are clamped to the rule's MaxUnits before applying
// the per-unit rate; negative or non-finite reported units score as zero.
// Component values enter the sum unrounded (breakdown entries are rounded to
// 2 decimals for display only); the sum is rounded to the nearest integer and
// clamped to [0, MaxScore] at the end.
func CalculateDailyScore(a DailyActivities, cfg PathConfig) ScoreResult {
	breakdown := make(map[string]float64)
	sum := 0.0

	record := func(key string, pts float64) {
		if pts > 0 {
			breakdown[key] = round2(pts)
			sum += pts
		}
	}

	if r := cfg.HomeCookedMeals; r != nil {
		record("home_cooked_meals", unitPoints(a.HomeCookedMeals, *r))
	}
	if r := cfg.ExerciseMinutes; r != nil {
		record("exercise_minutes", unitPoints(a.ExerciseMinutes, *r))
	}

	// Inverted flag: points for NOT having eaten junk food.
	if !a.JunkFood {
		record("no_junk_food", cfg.NoJunkFood)
	}

	flags := []struct {
		key    string
		set    bool
		points float64
	}{
		{"strength_training", a.StrengthTraining, cfg.StrengthTraining},
		{"no_spending", a.NoSpending, cfg.NoSpending},
		{"invested_bitcoin", a.InvestedBitcoin, cfg.InvestedBitcoin},
		{"meditation", a.Meditation, cfg.Meditation},
		{"gratitude", a.Gratitude, cfg.Gratitude},
		{"read_or_learned", a.ReadOrLearned, cfg.ReadOrLearned},
		{"environmental_action", a.EnvironmentalAction, cfg.EnvironmentalAction},
	}
	for _, f := range flags {
		if f.set {
			record(f.key, f.points)
		}
	}

	total := int(math.Round(sum))
	if total < 0 {
		total = 0
	}
	if total > cfg.MaxScore {
		total = cfg.MaxScore
	}

	pct := 0.0
	if cfg.MaxScore > 0 {
		pct = round1(float64(total) / float64(cfg.MaxScore) * 100)
	}

	return ScoreResult{
		Total:      total,
		MaxScore:   cfg.MaxScore,
		Percentage: pct,
		Breakdown:  breakdown,
	}
}

// unitPoints clamps reported units into [0, MaxUnits] and applies the rate.
// Non-finite input counts as zero units.
func unitPoints(units float64, r UnitRule) float64 {
	if math.IsNaN(units) || math.IsInf(units, 0) || units < 0 {
		units = 0
	}
	maxUnits := r.MaxUnits
	if math.IsNaN(maxUnits) || math.IsInf(maxUnits, 0) || maxUnits < 0 {
		maxUnits = 0
	}
	if units > maxUnits {
		units = maxUnits
	}
	rate := r.PointsPerUnit
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}
	return units * rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
