package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Milestone is a fixed sat-denominated accumulation threshold.
type Milestone struct {
	Label      string `json:"label"`
	TargetSats int64  `json:"target_sats"`
}

// BitcoinMilestones is the ordered ladder from the first sat to one whole
// Bitcoin.
var BitcoinMilestones = []Milestone{
	{Label: "First Sat", TargetSats: 1},
	{Label: "100 Sats", TargetSats: 100},
	{Label: "1K Sats", TargetSats: 1_000},
	{Label: "10K Sats", TargetSats: 10_000},
	{Label: "100K Sats", TargetSats: 100_000},
	{Label: "1M Sats", TargetSats: 1_000_000},
	{Label: "5M Sats", TargetSats: 5_000_000},
	{Label: "10M Sats", TargetSats: 10_000_000},
	{Label: "50M Sats", TargetSats: 50_000_000},
	{Label: "100M Sats (1 BTC)", TargetSats: 100_000_000},
}

// SatsPoint is one step in a time-ordered cumulative sats series.
type SatsPoint struct {
	Date           time.Time `json:"date"`
	CumulativeSats int64     `json:"cumulative_sats"`
}

// MilestoneProgress reports one milestone against a cumulative series.
// Achievement is monotonic in cumulative sats; progress is capped at 100.
type MilestoneProgress struct {
	Milestone
	Achieved   bool       `json:"achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
	Progress   float64    `json:"progress"`
}

// ComputeMilestones evaluates every milestone against a time-ordered
// cumulative sats series. AchievedAt is the date of the first point meeting
// or exceeding the target.
func ComputeMilestones(series []SatsPoint) []MilestoneProgress {
	var current int64
	if n := len(series); n > 0 {
		current = series[n-1].CumulativeSats
	}

	out := make([]MilestoneProgress, 0, len(BitcoinMilestones))
	for _, m := range BitcoinMilestones {
		p := MilestoneProgress{Milestone: m}
		p.Progress = milestoneProgress(current, m.TargetSats)
		if current >= m.TargetSats {
			p.Achieved = true
			for _, pt := range series {
				if pt.CumulativeSats >= m.TargetSats {
					t := pt.Date
					p.AchievedAt = &t
					break
				}
			}
		}
		out = append(out, p)
	}
	return out
}

func milestoneProgress(cumulative, target int64) float64 {
	if target <= 0 {
		return 100
	}
	pct := float64(cumulative) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// dcaDailySpends are the five illustrative daily budgets, in USD.
var dcaDailySpends = []int64{5, 10, 25, 50, 100}

// DCAScenario projects one flat daily-spend outcome over a number of days at
// a fixed price. Purely illustrative, never persisted.
type DCAScenario struct {
	DailyUSD    int64           `json:"daily_usd"`
	Days        int             `json:"days"`
	InvestedUSD decimal.Decimal `json:"invested_usd"`
	Btc         decimal.Decimal `json:"btc"`
	Sats        int64           `json:"sats"`
}

// SimulateDCA projects sats/BTC/USD outcomes for the five fixed daily-spend
// scenarios over the given number of days at a flat BTC price.
func SimulateDCA(days int, btcPrice decimal.Decimal) []DCAScenario {
	if days < 0 {
		days = 0
	}
	out := make([]DCAScenario, 0, len(dcaDailySpends))
	for _, spend := range dcaDailySpends {
		invested := decimal.NewFromInt(spend * int64(days))
		btc := decimal.Zero
		if btcPrice.IsPositive() {
			btc = invested.DivRound(btcPrice, 8)
		}
		out = append(out, DCAScenario{
			DailyUSD:    spend,
			Days:        days,
			InvestedUSD: invested,
			Btc:         btc,
			Sats:        btc.Mul(satsPerBtc).IntPart(),
		})
	}
	return out
}
