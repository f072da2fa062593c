package models

import (
	"math"
	"testing"
)

func perfectDay() DailyActivities {
	return DailyActivities{
		HomeCookedMeals:     3,
		JunkFood:            false,
		ExerciseMinutes:     40,
		StrengthTraining:    true,
		NoSpending:          true,
		InvestedBitcoin:     true,
		Meditation:          true,
		Gratitude:           true,
		ReadOrLearned:       true,
		EnvironmentalAction: true,
	}
}

func TestCalculateDailyScoreMixedDay(t *testing.T) {
	a := DailyActivities{
		HomeCookedMeals:  3,
		JunkFood:         false,
		ExerciseMinutes:  40,
		StrengthTraining: true,
		NoSpending:       true,
		InvestedBitcoin:  true,
		Meditation:       true,
		ReadOrLearned:    true,
	}

	got := CalculateDailyScore(a, DefaultPathConfig())

	if got.Total != 90 {
		t.Fatalf("total = %d, want 90 (breakdown %v)", got.Total, got.Breakdown)
	}
	if got.MaxScore != 100 {
		t.Fatalf("max = %d, want 100", got.MaxScore)
	}
	if got.Percentage != 90.0 {
		t.Fatalf("percentage = %v, want 90.0", got.Percentage)
	}
	if v := got.Breakdown["home_cooked_meals"]; v != 20.0 {
		t.Fatalf("home_cooked_meals breakdown = %v, want 20.0", v)
	}
	if v := got.Breakdown["exercise_minutes"]; v != 20.0 {
		t.Fatalf("exercise_minutes breakdown = %v, want 20.0", v)
	}
	if _, ok := got.Breakdown["gratitude"]; ok {
		t.Fatal("gratitude should be absent from breakdown when not logged")
	}
	if _, ok := got.Breakdown["environmental_action"]; ok {
		t.Fatal("environmental_action should be absent from breakdown when not logged")
	}
}

func TestCalculateDailyScoreNothingLogged(t *testing.T) {
	// JunkFood defaults to false, which earns the no-junk-food bonus; a truly
	// zero day must set it.
	a := DailyActivities{JunkFood: true}

	got := CalculateDailyScore(a, DefaultPathConfig())

	if got.Total != 0 {
		t.Fatalf("total = %d, want 0", got.Total)
	}
	if got.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0", got.Percentage)
	}
	if len(got.Breakdown) != 0 {
		t.Fatalf("breakdown should be empty, got %v", got.Breakdown)
	}
}

func TestCalculateDailyScoreClampsToMax(t *testing.T) {
	cfg := DefaultPathConfig()
	cfg.MaxScore = 50

	got := CalculateDailyScore(perfectDay(), cfg)

	if got.Total != 50 {
		t.Fatalf("total = %d, want clamp at 50", got.Total)
	}
	if got.Percentage != 100.0 {
		t.Fatalf("percentage = %v, want 100.0", got.Percentage)
	}
}

func TestCalculateDailyScoreUnitClamping(t *testing.T) {
	cfg := DefaultPathConfig()

	three := CalculateDailyScore(DailyActivities{HomeCookedMeals: 3, JunkFood: true}, cfg)
	ten := CalculateDailyScore(DailyActivities{HomeCookedMeals: 10, JunkFood: true}, cfg)
	if three.Total != ten.Total {
		t.Fatalf("units above MaxUnits must not add points: 3 meals -> %d, 10 meals -> %d", three.Total, ten.Total)
	}

	forty := CalculateDailyScore(DailyActivities{ExerciseMinutes: 40, JunkFood: true}, cfg)
	twoHundred := CalculateDailyScore(DailyActivities{ExerciseMinutes: 200, JunkFood: true}, cfg)
	if forty.Total != twoHundred.Total {
		t.Fatalf("minutes above MaxUnits must not add points: 40 -> %d, 200 -> %d", forty.Total, twoHundred.Total)
	}
}

func TestCalculateDailyScoreRejectsBadUnits(t *testing.T) {
	cfg := DefaultPathConfig()

	cases := []struct {
		name  string
		meals float64
	}{
		{"negative", -5},
		{"nan", math.NaN()},
		{"posinf", math.Inf(1)},
		{"neginf", math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// +Inf is treated as zero units, not MaxUnits.
			got := CalculateDailyScore(DailyActivities{HomeCookedMeals: tc.meals, JunkFood: true}, cfg)
			if got.Total != 0 {
				t.Fatalf("%s meals: total = %d, want 0", tc.name, got.Total)
			}
			if _, ok := got.Breakdown["home_cooked_meals"]; ok {
				t.Fatalf("%s meals must not appear in breakdown", tc.name)
			}
		})
	}
}

func TestCalculateDailyScoreJunkFoodInversion(t *testing.T) {
	cfg := DefaultPathConfig()

	clean := CalculateDailyScore(DailyActivities{JunkFood: false}, cfg)
	dirty := CalculateDailyScore(DailyActivities{JunkFood: true}, cfg)

	if clean.Total != 10 {
		t.Fatalf("junk_food=false total = %d, want 10", clean.Total)
	}
	if dirty.Total != 0 {
		t.Fatalf("junk_food=true total = %d, want 0", dirty.Total)
	}
	if _, ok := clean.Breakdown["no_junk_food"]; !ok {
		t.Fatal("no_junk_food missing from breakdown")
	}
}

func TestCalculateDailyScoreMonotonicInActivities(t *testing.T) {
	cfg := DefaultPathConfig()
	base := DailyActivities{JunkFood: true}

	prev := CalculateDailyScore(base, cfg).Total
	steps := []func(*DailyActivities){
		func(a *DailyActivities) { a.HomeCookedMeals = 2 },
		func(a *DailyActivities) { a.ExerciseMinutes = 30 },
		func(a *DailyActivities) { a.JunkFood = false },
		func(a *DailyActivities) { a.StrengthTraining = true },
		func(a *DailyActivities) { a.Meditation = true },
		func(a *DailyActivities) { a.ReadOrLearned = true },
	}
	for i, step := range steps {
		step(&base)
		got := CalculateDailyScore(base, cfg).Total
		if got < prev {
			t.Fatalf("step %d decreased the score: %d -> %d", i, prev, got)
		}
		prev = got
	}
}

func TestCalculateDailyScoreUnconfiguredActivitiesIgnored(t *testing.T) {
	// The physical path does not score no_spending or invested_bitcoin.
	cfg := PathConfig{
		StrengthTraining: 20,
		MaxScore:         100,
	}

	got := CalculateDailyScore(perfectDay(), cfg)

	if got.Total != 20 {
		t.Fatalf("total = %d, want 20 (only strength_training configured)", got.Total)
	}
	if len(got.Breakdown) != 1 {
		t.Fatalf("breakdown = %v, want only strength_training", got.Breakdown)
	}
}

func TestCalculateDailyScorePerfectDayHitsMax(t *testing.T) {
	got := CalculateDailyScore(perfectDay(), DefaultPathConfig())
	if got.Total != 100 {
		t.Fatalf("total = %d, want 100 (breakdown %v)", got.Total, got.Breakdown)
	}
	if got.Percentage != 100.0 {
		t.Fatalf("percentage = %v, want 100.0", got.Percentage)
	}
}

func TestCalculateDailyScoreZeroMaxScore(t *testing.T) {
	cfg := DefaultPathConfig()
	cfg.MaxScore = 0

	got := CalculateDailyScore(perfectDay(), cfg)
	if got.Total != 0 {
		t.Fatalf("total = %d, want 0 when MaxScore is 0", got.Total)
	}
	if got.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 when MaxScore is 0", got.Percentage)
	}
}

func TestCalculateDailyScoreDeterministic(t *testing.T) {
	cfg := DefaultPathConfig()
	a := perfectDay()
	first := CalculateDailyScore(a, cfg)
	for i := 0; i < 100; i++ {
		got := CalculateDailyScore(a, cfg)
		if got.Total != first.Total || got.Percentage != first.Percentage {
			t.Fatalf("iteration %d diverged: %+v vs %+v", i, got, first)
		}
	}
}
