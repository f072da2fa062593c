package utils

import (
	"errors"
	"testing"
)

func TestParseCoachAdviceStrict(t *testing.T) {
	raw := `{"insights":["score average is trending up","no bitcoin purchases in 7 days"],"recommendation":"automate a small daily buy","data_points":["avg 72.5%"]}`

	got, err := ParseCoachAdvice(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Insights) != 2 {
		t.Fatalf("insights = %v, want 2 entries", got.Insights)
	}
	if got.Recommendation != "automate a small daily buy" {
		t.Fatalf("recommendation = %q", got.Recommendation)
	}
	if len(got.DataPoints) != 1 {
		t.Fatalf("data points = %v, want 1 entry", got.DataPoints)
	}
}

func TestParseCoachAdviceFencedJSON(t *testing.T) {
	raw := "```json\n{\"insights\":[\"one\"],\"recommendation\":\"rest\",\"data_points\":[]}\n```"

	got, err := ParseCoachAdvice(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.Recommendation != "rest" {
		t.Fatalf("recommendation = %q, want rest", got.Recommendation)
	}
}

func TestParseCoachAdviceProseWrapped(t *testing.T) {
	raw := `Sure! Here's my advice:
{"insights":["you skipped meditation twice"],"recommendation":"meditate before breakfast","data_points":["2 missed days"]}
Hope this helps!`

	got, err := ParseCoachAdvice(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.Recommendation != "meditate before breakfast" {
		t.Fatalf("recommendation = %q", got.Recommendation)
	}
}

func TestParseCoachAdviceRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"prose only", "just keep going, you're doing great"},
		{"empty", ""},
		{"wrong schema", `{"advice":"do things"}`},
		{"empty object", `{}`},
		{"broken json", `{"insights":["a"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCoachAdvice(tc.raw)
			if !errors.Is(err, ErrMalformedCompletion) {
				t.Fatalf("err = %v, want ErrMalformedCompletion", err)
			}
		})
	}
}

func TestRepairJSONPayload(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `note: {"a":1} done`, `{"a":1}`},
		{"no object", "nothing here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := repairJSONPayload(tc.in); got != tc.want {
				t.Fatalf("repairJSONPayload(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
