package controllers

import "testing"

func TestClassifyMotivation(t *testing.T) {
	cases := []struct {
		name       string
		avgPercent float64
		loggedDays int
		want       string
	}{
		{"no history", 0, 0, "starting"},
		{"high average", 90, 7, "thriving"},
		{"boundary thriving", 75, 7, "thriving"},
		{"middle", 60, 5, "steady"},
		{"boundary steady", 50, 3, "steady"},
		{"low", 30, 7, "building"},
		{"boundary building", 25, 2, "building"},
		{"bottom", 10, 7, "slipping"},
		{"zero with history", 0, 1, "slipping"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyMotivation(tc.avgPercent, tc.loggedDays); got != tc.want {
				t.Fatalf("classifyMotivation(%v, %d) = %q, want %q", tc.avgPercent, tc.loggedDays, got, tc.want)
			}
		})
	}
}
