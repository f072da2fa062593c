package models

import (
	"time"

	"gorm.io/gorm"
)

// UnitRule scores a continuous activity: reported units are clamped to
// MaxUnits, then multiplied by PointsPerUnit.
type UnitRule struct {
	PointsPerUnit float64 `json:"points_per_unit"`
	MaxUnits      float64 `json:"max_units"`
}

// PathConfig holds per-path scoring weights. Activities absent from the
// config (nil rule or zero flat value) contribute nothing regardless of the
// logged flag; different paths selectively score different behaviours.
//
// The sum of attainable points under realistic configs exceeds MaxScore, so
// the final cap is load-bearing.
type PathConfig struct {
	HomeCookedMeals     *UnitRule `json:"home_cooked_meals,omitempty"`
	ExerciseMinutes     *UnitRule `json:"exercise_minutes,omitempty"`
	NoJunkFood          float64   `json:"no_junk_food,omitempty"`
	StrengthTraining    float64   `json:"strength_training,omitempty"`
	NoSpending          float64   `json:"no_spending,omitempty"`
	InvestedBitcoin     float64   `json:"invested_bitcoin,omitempty"`
	Meditation          float64   `json:"meditation,omitempty"`
	Gratitude           float64   `json:"gratitude,omitempty"`
	ReadOrLearned       float64   `json:"read_or_learned,omitempty"`
	EnvironmentalAction float64   `json:"environmental_action,omitempty"`
	MaxScore            int       `json:"max_score"`
}

// Path is one of the six predefined lifestyle weighting profiles.
type Path struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"size:32;uniqueIndex;not null" json:"slug"`
	Name        string     `gorm:"size:64;not null" json:"name"`
	Description string     `gorm:"size:512" json:"description"`
	Config      PathConfig `gorm:"serializer:json" json:"config"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DefaultPathConfig is the balanced path's weight set; also the reference
// config used across the scoring tests.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		HomeCookedMeals:     &UnitRule{PointsPerUnit: 6.6667, MaxUnits: 3},
		NoJunkFood:          10,
		ExerciseMinutes:     &UnitRule{PointsPerUnit: 0.5, MaxUnits: 40},
		StrengthTraining:    10,
		NoSpending:          5,
		InvestedBitcoin:     5,
		Meditation:          10,
		Gratitude:           5,
		ReadOrLearned:       10,
		EnvironmentalAction: 5,
		MaxScore:            100,
	}
}

// SeedPaths inserts the six predefined paths when missing. Existing rows are
// left untouched so operator-tuned weights survive restarts.
func SeedPaths(db *gorm.DB) error {
	paths := []Path{
		{
			Slug:        "balanced",
			Name:        "Balanced",
			Description: "Even weighting across nutrition, movement, money and mind.",
			Config:      DefaultPathConfig(),
		},
		{
			Slug:        "financial",
			Name:        "Financial Freedom",
			Description: "Heavy weighting on spending discipline and Bitcoin accumulation.",
			Config: PathConfig{
				HomeCookedMeals: &UnitRule{PointsPerUnit: 5, MaxUnits: 3},
				NoJunkFood:      5,
				ExerciseMinutes: &UnitRule{PointsPerUnit: 0.25, MaxUnits: 40},
				NoSpending:      20,
				InvestedBitcoin: 25,
				ReadOrLearned:   15,
				Gratitude:       5,
				MaxScore:        100,
			},
		},
		{
			Slug:        "physical",
			Name:        "Physical Sovereignty",
			Description: "Training and nutrition first; everything else is support work.",
			Config: PathConfig{
				HomeCookedMeals:  &UnitRule{PointsPerUnit: 8, MaxUnits: 3},
				NoJunkFood:       15,
				ExerciseMinutes:  &UnitRule{PointsPerUnit: 0.75, MaxUnits: 60},
				StrengthTraining: 20,
				Meditation:       5,
				Gratitude:        5,
				MaxScore:         100,
			},
		},
		{
			Slug:        "mental",
			Name:        "Mental Resilience",
			Description: "Meditation, gratitude and learning carry the day.",
			Config: PathConfig{
				HomeCookedMeals: &UnitRule{PointsPerUnit: 5, MaxUnits: 3},
				NoJunkFood:      10,
				ExerciseMinutes: &UnitRule{PointsPerUnit: 0.25, MaxUnits: 40},
				Meditation:      25,
				Gratitude:       15,
				ReadOrLearned:   20,
				MaxScore:        100,
			},
		},
		{
			Slug:        "spiritual",
			Name:        "Spiritual Growth",
			Description: "Presence over productivity.",
			Config: PathConfig{
				HomeCookedMeals:     &UnitRule{PointsPerUnit: 5, MaxUnits: 3},
				Meditation:          30,
				Gratitude:           25,
				ReadOrLearned:       10,
				EnvironmentalAction: 10,
				ExerciseMinutes:     &UnitRule{PointsPerUnit: 0.25, MaxUnits: 40},
				MaxScore:            100,
			},
		},
		{
			Slug:        "planetary",
			Name:        "Planetary Steward",
			Description: "Environmental action weighted alongside personal habits.",
			Config: PathConfig{
				HomeCookedMeals:     &UnitRule{PointsPerUnit: 6.6667, MaxUnits: 3},
				NoJunkFood:          10,
				ExerciseMinutes:     &UnitRule{PointsPerUnit: 0.5, MaxUnits: 40},
				NoSpending:          10,
				EnvironmentalAction: 25,
				Gratitude:           5,
				ReadOrLearned:       10,
				MaxScore:            100,
			},
		},
	}

	for _, p := range paths {
		var existing Path
		err := db.Where("slug = ?", p.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
