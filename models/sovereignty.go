package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SovereigntyStatus partitions the full sovereignty ratio into five ordered
// tiers. Canonical thresholds are 1 / 3 / 10 / 25, boundary inclusive upward:
// a ratio of exactly 3 is robust, not fragile.
type SovereigntyStatus string

const (
	StatusVulnerable   SovereigntyStatus = "vulnerable"
	StatusFragile      SovereigntyStatus = "fragile"
	StatusRobust       SovereigntyStatus = "robust"
	StatusAntifragile  SovereigntyStatus = "antifragile"
	StatusGenerational SovereigntyStatus = "generational"
)

// satsPerBtc converts satoshis to whole Bitcoin.
var satsPerBtc = decimal.NewFromInt(100_000_000)

// MissingDataError signals that a calculation was requested before the
// prerequisite records exist. Callers should prompt data entry rather than
// treat it as a validation failure.
type MissingDataError struct {
	What string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing prerequisite data: %s", e.What)
}

// BitcoinPurchase is one day's Bitcoin accumulation, as recorded on a daily
// entry.
type BitcoinPurchase struct {
	Sats        int64
	InvestedUSD decimal.Decimal
}

// SovereigntyCalculation is the derived financial picture for one user.
// YearsOfRunway mirrors FullSovereigntyRatio by construction; both names are
// kept because API consumers read them in different places.
type SovereigntyCalculation struct {
	TotalSats   int64           `json:"total_sats"`
	TotalBtc    decimal.Decimal `json:"total_btc"`
	AvgBtcPrice decimal.Decimal `json:"avg_btc_price"`
	// BitcoinValue here is cost basis, not mark-to-market. The live-price
	// valuation lives on the bitcoin metrics endpoint.
	BitcoinValue decimal.Decimal `json:"bitcoin_value"`

	TotalCrypto            decimal.Decimal `json:"total_crypto"`
	TraditionalInvestments decimal.Decimal `json:"traditional_investments"`
	CashLiquid             decimal.Decimal `json:"cash_liquid"`
	RealAssets             decimal.Decimal `json:"real_assets"`
	TotalAssets            decimal.Decimal `json:"total_assets"`
	TotalDebt              decimal.Decimal `json:"total_debt"`
	NetWorth               decimal.Decimal `json:"net_worth"`

	FixedExpensesAnnual    decimal.Decimal `json:"fixed_expenses_annual"`
	VariableExpensesAnnual decimal.Decimal `json:"variable_expenses_annual"`
	TotalExpensesAnnual    decimal.Decimal `json:"total_expenses_annual"`

	CryptoRatio          float64           `json:"crypto_ratio"`
	FullSovereigntyRatio float64           `json:"full_sovereignty_ratio"`
	YearsOfRunway        float64           `json:"years_of_runway"`
	Status               SovereigntyStatus `json:"status"`
}

// CalculateSovereignty aggregates a user's current asset snapshot, expense
// snapshot and cumulative Bitcoin purchases into one SovereigntyCalculation.
// Pure function; both snapshots are required.
func CalculateSovereignty(assets *AssetSnapshot, expenses *ExpenseSnapshot, purchases []BitcoinPurchase) (*SovereigntyCalculation, error) {
	if assets == nil {
		return nil, &MissingDataError{What: "asset snapshot"}
	}
	if expenses == nil {
		return nil, &MissingDataError{What: "expense snapshot"}
	}

	var totalSats int64
	investedUSD := decimal.Zero
	for _, p := range purchases {
		if p.Sats > 0 {
			totalSats += p.Sats
		}
		if p.InvestedUSD.IsPositive() {
			investedUSD = investedUSD.Add(p.InvestedUSD)
		}
	}

	totalBtc := decimal.NewFromInt(totalSats).DivRound(satsPerBtc, 8)

	// Implied average cost basis: with BTC held, totalBtc * avgPrice collapses
	// to the total USD invested, so no live price fetch is needed on this
	// path. Without BTC there is nothing to value, even if USD amounts were
	// logged against sat-less entries.
	avgPrice := decimal.Zero
	bitcoinValue := decimal.Zero
	if totalBtc.IsPositive() {
		avgPrice = investedUSD.DivRound(totalBtc, 2)
		bitcoinValue = investedUSD
	}

	totalCrypto := bitcoinValue.Add(assets.OtherCrypto)
	traditional := assets.TraditionalInvestments()
	cash := assets.CashLiquid()
	real := assets.RealAssets()

	totalAssets := totalCrypto.Add(traditional).Add(cash).Add(real)
	totalDebt := assets.TotalDebt()
	netWorth := totalAssets.Sub(totalDebt)

	fixed := expenses.FixedAnnual()
	variable := expenses.VariableAnnual()
	totalExpenses := fixed.Add(variable)

	cryptoRatio := 0.0
	if fixed.IsPositive() {
		cryptoRatio = totalCrypto.DivRound(fixed, 6).InexactFloat64()
	}
	fullRatio := 0.0
	if totalExpenses.IsPositive() {
		fullRatio = netWorth.DivRound(totalExpenses, 6).InexactFloat64()
	}

	return &SovereigntyCalculation{
		TotalSats:              totalSats,
		TotalBtc:               totalBtc,
		AvgBtcPrice:            avgPrice,
		BitcoinValue:           bitcoinValue,
		TotalCrypto:            totalCrypto,
		TraditionalInvestments: traditional,
		CashLiquid:             cash,
		RealAssets:             real,
		TotalAssets:            totalAssets,
		TotalDebt:              totalDebt,
		NetWorth:               netWorth,
		FixedExpensesAnnual:    fixed,
		VariableExpensesAnnual: variable,
		TotalExpensesAnnual:    totalExpenses,
		CryptoRatio:            cryptoRatio,
		FullSovereigntyRatio:   fullRatio,
		YearsOfRunway:          fullRatio,
		Status:                 ClassifySovereigntyStatus(fullRatio),
	}, nil
}

// ClassifySovereigntyStatus maps a full sovereignty ratio onto its status
// tier. Evaluated in order, first match wins.
func ClassifySovereigntyStatus(ratio float64) SovereigntyStatus {
	switch {
	case ratio < 1:
		return StatusVulnerable
	case ratio < 3:
		return StatusFragile
	case ratio < 10:
		return StatusRobust
	case ratio < 25:
		return StatusAntifragile
	default:
		return StatusGenerational
	}
}
