package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeMilestonesFullBitcoin(t *testing.T) {
	series := []SatsPoint{
		{Date: day("2025-01-01"), CumulativeSats: 50_000_000},
		{Date: day("2025-06-01"), CumulativeSats: 100_000_000},
	}

	got := ComputeMilestones(series)
	if len(got) != len(BitcoinMilestones) {
		t.Fatalf("got %d milestones, want %d", len(got), len(BitcoinMilestones))
	}

	for _, m := range got {
		if !m.Achieved {
			t.Errorf("%s should be achieved at 100M sats", m.Label)
		}
		if m.Progress != 100 {
			t.Errorf("%s progress = %v, want 100", m.Label, m.Progress)
		}
		if m.AchievedAt == nil {
			t.Errorf("%s has no achieved date", m.Label)
		}
	}

	last := got[len(got)-1]
	if last.TargetSats != 100_000_000 {
		t.Fatalf("last milestone target = %d, want 100M", last.TargetSats)
	}
	if !last.AchievedAt.Equal(day("2025-06-01")) {
		t.Fatalf("1 BTC achieved at %v, want 2025-06-01", last.AchievedAt)
	}
}

func TestComputeMilestonesFirstAchievedDate(t *testing.T) {
	series := []SatsPoint{
		{Date: day("2025-01-01"), CumulativeSats: 500},
		{Date: day("2025-01-02"), CumulativeSats: 1_200},
		{Date: day("2025-01-03"), CumulativeSats: 5_000},
	}

	got := ComputeMilestones(series)

	byTarget := map[int64]MilestoneProgress{}
	for _, m := range got {
		byTarget[m.TargetSats] = m
	}

	oneK := byTarget[1_000]
	if !oneK.Achieved || oneK.AchievedAt == nil {
		t.Fatal("1K milestone should be achieved with a date")
	}
	if !oneK.AchievedAt.Equal(day("2025-01-02")) {
		t.Fatalf("1K achieved at %v, want the first crossing on 2025-01-02", oneK.AchievedAt)
	}

	tenK := byTarget[10_000]
	if tenK.Achieved || tenK.AchievedAt != nil {
		t.Fatal("10K milestone should not be achieved at 5000 sats")
	}
	if tenK.Progress != 50 {
		t.Fatalf("10K progress = %v, want 50", tenK.Progress)
	}
}

func TestComputeMilestonesMonotonicAchievement(t *testing.T) {
	series := []SatsPoint{{Date: day("2025-03-01"), CumulativeSats: 1_500_000}}

	got := ComputeMilestones(series)
	seenUnachieved := false
	for _, m := range got {
		if !m.Achieved {
			seenUnachieved = true
		} else if seenUnachieved {
			t.Fatalf("%s achieved after a smaller milestone was not", m.Label)
		}
	}
}

func TestComputeMilestonesEmptySeries(t *testing.T) {
	got := ComputeMilestones(nil)
	for _, m := range got {
		if m.Achieved || m.Progress != 0 || m.AchievedAt != nil {
			t.Fatalf("%s should be untouched on an empty series: %+v", m.Label, m)
		}
	}
}

func TestComputeMilestonesProgressCap(t *testing.T) {
	series := []SatsPoint{{Date: day("2025-01-01"), CumulativeSats: 250_000_000}}
	for _, m := range ComputeMilestones(series) {
		if m.Progress > 100 {
			t.Fatalf("%s progress = %v, must cap at 100", m.Label, m.Progress)
		}
	}
}

func TestSimulateDCA(t *testing.T) {
	price := d("50000")
	got := SimulateDCA(365, price)

	if len(got) != 5 {
		t.Fatalf("got %d scenarios, want 5", len(got))
	}

	wantDaily := []int64{5, 10, 25, 50, 100}
	for i, sc := range got {
		if sc.DailyUSD != wantDaily[i] {
			t.Fatalf("scenario %d daily = %d, want %d", i, sc.DailyUSD, wantDaily[i])
		}
		if sc.Days != 365 {
			t.Fatalf("scenario %d days = %d, want 365", i, sc.Days)
		}
		wantInvested := decimal.NewFromInt(sc.DailyUSD * 365)
		if !sc.InvestedUSD.Equal(wantInvested) {
			t.Fatalf("scenario %d invested = %s, want %s", i, sc.InvestedUSD, wantInvested)
		}
	}

	// $10/day for a year at $50k: 3650/50000 = 0.073 BTC = 7.3M sats.
	ten := got[1]
	if !ten.InvestedUSD.Equal(d("3650")) {
		t.Fatalf("invested = %s, want 3650", ten.InvestedUSD)
	}
	if !ten.Btc.Equal(d("0.073")) {
		t.Fatalf("btc = %s, want 0.073", ten.Btc)
	}
	if ten.Sats != 7_300_000 {
		t.Fatalf("sats = %d, want 7300000", ten.Sats)
	}
}

func TestSimulateDCAZeroPriceAndDays(t *testing.T) {
	for _, sc := range SimulateDCA(365, d("0")) {
		if !sc.Btc.IsZero() || sc.Sats != 0 {
			t.Fatalf("zero price must yield zero btc, got %+v", sc)
		}
	}
	for _, sc := range SimulateDCA(-10, d("50000")) {
		if !sc.InvestedUSD.IsZero() {
			t.Fatalf("negative days must clamp to zero spend, got %+v", sc)
		}
	}
}
