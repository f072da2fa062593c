package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestClassifySovereigntyStatus(t *testing.T) {
	cases := []struct {
		ratio float64
		want  SovereigntyStatus
	}{
		{-2, StatusVulnerable},
		{0, StatusVulnerable},
		{0.99, StatusVulnerable},
		{1, StatusFragile},
		{2.5, StatusFragile},
		{2.999, StatusFragile},
		{3, StatusRobust},
		{9.999, StatusRobust},
		{10, StatusAntifragile},
		{24.999, StatusAntifragile},
		{25, StatusGenerational},
		{1000, StatusGenerational},
	}
	for _, tc := range cases {
		if got := ClassifySovereigntyStatus(tc.ratio); got != tc.want {
			t.Errorf("ClassifySovereigntyStatus(%v) = %q, want %q", tc.ratio, got, tc.want)
		}
	}
}

func TestCalculateSovereigntyMissingSnapshots(t *testing.T) {
	assets := &AssetSnapshot{}
	expenses := &ExpenseSnapshot{}

	_, err := CalculateSovereignty(nil, expenses, nil)
	var mde *MissingDataError
	if !errors.As(err, &mde) {
		t.Fatalf("nil assets: err = %v, want MissingDataError", err)
	}

	_, err = CalculateSovereignty(assets, nil, nil)
	if !errors.As(err, &mde) {
		t.Fatalf("nil expenses: err = %v, want MissingDataError", err)
	}
}

func TestCalculateSovereigntyFragileExample(t *testing.T) {
	// Net worth 50_000 against 20_000 annual expenses: ratio 2.5, fragile.
	assets := &AssetSnapshot{
		CheckingSavings: d("50000"),
	}
	expenses := &ExpenseSnapshot{
		Housing: d("12000"),
		Food:    d("8000"),
	}

	got, err := CalculateSovereignty(assets, expenses, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !got.NetWorth.Equal(d("50000")) {
		t.Fatalf("net worth = %s, want 50000", got.NetWorth)
	}
	if !got.TotalExpensesAnnual.Equal(d("20000")) {
		t.Fatalf("total expenses = %s, want 20000", got.TotalExpensesAnnual)
	}
	if got.FullSovereigntyRatio != 2.5 {
		t.Fatalf("ratio = %v, want 2.5", got.FullSovereigntyRatio)
	}
	if got.YearsOfRunway != got.FullSovereigntyRatio {
		t.Fatalf("years of runway %v must equal the full ratio %v", got.YearsOfRunway, got.FullSovereigntyRatio)
	}
	if got.Status != StatusFragile {
		t.Fatalf("status = %q, want fragile", got.Status)
	}
}

func TestCalculateSovereigntyBitcoinCostBasis(t *testing.T) {
	assets := &AssetSnapshot{}
	expenses := &ExpenseSnapshot{Housing: d("1")}

	purchases := []BitcoinPurchase{
		{Sats: 1_000_000, InvestedUSD: d("500")},
		{Sats: 2_000_000, InvestedUSD: d("900")},
		{Sats: 0, InvestedUSD: d("0")},
	}

	got, err := CalculateSovereignty(assets, expenses, purchases)
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalSats != 3_000_000 {
		t.Fatalf("total sats = %d, want 3000000", got.TotalSats)
	}
	if !got.TotalBtc.Equal(d("0.03")) {
		t.Fatalf("total btc = %s, want 0.03", got.TotalBtc)
	}
	// Bitcoin value equals total invested USD under cost basis.
	if !got.BitcoinValue.Equal(d("1400")) {
		t.Fatalf("bitcoin value = %s, want 1400", got.BitcoinValue)
	}
	// 1400 / 0.03 rounded to cents.
	if !got.AvgBtcPrice.Equal(d("46666.67")) {
		t.Fatalf("avg price = %s, want 46666.67", got.AvgBtcPrice)
	}
}

func TestCalculateSovereigntyUSDWithoutSats(t *testing.T) {
	// Invested dollars logged against entries that recorded no sats value
	// nothing: totalBtc is zero, so avgPrice and bitcoinValue stay zero.
	assets := &AssetSnapshot{OtherCrypto: d("250")}
	expenses := &ExpenseSnapshot{Housing: d("1")}

	purchases := []BitcoinPurchase{
		{Sats: 0, InvestedUSD: d("500")},
	}

	got, err := CalculateSovereignty(assets, expenses, purchases)
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalSats != 0 {
		t.Fatalf("total sats = %d, want 0", got.TotalSats)
	}
	if !got.BitcoinValue.IsZero() {
		t.Fatalf("bitcoin value = %s, want 0 with no BTC held", got.BitcoinValue)
	}
	if !got.AvgBtcPrice.IsZero() {
		t.Fatalf("avg price = %s, want 0 with no BTC held", got.AvgBtcPrice)
	}
	if !got.TotalCrypto.Equal(d("250")) {
		t.Fatalf("total crypto = %s, want only the 250 of other crypto", got.TotalCrypto)
	}
	if !got.TotalAssets.Equal(d("250")) {
		t.Fatalf("total assets = %s, want 250", got.TotalAssets)
	}
}

func TestCalculateSovereigntyIgnoresNegativePurchases(t *testing.T) {
	assets := &AssetSnapshot{}
	expenses := &ExpenseSnapshot{Housing: d("1")}

	purchases := []BitcoinPurchase{
		{Sats: 100_000, InvestedUSD: d("50")},
		{Sats: -50_000, InvestedUSD: d("-25")},
	}

	got, err := CalculateSovereignty(assets, expenses, purchases)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalSats != 100_000 {
		t.Fatalf("total sats = %d, want 100000", got.TotalSats)
	}
	if !got.BitcoinValue.Equal(d("50")) {
		t.Fatalf("bitcoin value = %s, want 50", got.BitcoinValue)
	}
}

func TestCalculateSovereigntyAggregation(t *testing.T) {
	assets := &AssetSnapshot{
		OtherCrypto:     d("1000"),
		Retirement:      d("40000"),
		Brokerage:       d("10000"),
		CheckingSavings: d("5000"),
		EmergencyFund:   d("15000"),
		HomeEquity:      d("80000"),
		Vehicles:        d("12000"),
		OtherRealAssets: d("3000"),
		Mortgage:        d("120000"),
		AutoLoans:       d("8000"),
		CreditCardDebt:  d("2000"),
	}
	expenses := &ExpenseSnapshot{
		Housing:        d("18000"),
		Utilities:      d("3600"),
		Insurance:      d("2400"),
		DebtPayments:   d("6000"),
		Subscriptions:  d("600"),
		Food:           d("7200"),
		Transportation: d("3000"),
		Discretionary:  d("4800"),
		OtherVariable:  d("1200"),
	}
	purchases := []BitcoinPurchase{{Sats: 10_000_000, InvestedUSD: d("4000")}}

	got, err := CalculateSovereignty(assets, expenses, purchases)
	if err != nil {
		t.Fatal(err)
	}

	if !got.TotalCrypto.Equal(d("5000")) {
		t.Fatalf("total crypto = %s, want 5000", got.TotalCrypto)
	}
	if !got.TraditionalInvestments.Equal(d("50000")) {
		t.Fatalf("traditional = %s, want 50000", got.TraditionalInvestments)
	}
	if !got.CashLiquid.Equal(d("20000")) {
		t.Fatalf("cash = %s, want 20000", got.CashLiquid)
	}
	if !got.RealAssets.Equal(d("95000")) {
		t.Fatalf("real assets = %s, want 95000", got.RealAssets)
	}
	if !got.TotalAssets.Equal(d("170000")) {
		t.Fatalf("total assets = %s, want 170000", got.TotalAssets)
	}
	if !got.TotalDebt.Equal(d("130000")) {
		t.Fatalf("total debt = %s, want 130000", got.TotalDebt)
	}
	if !got.NetWorth.Equal(d("40000")) {
		t.Fatalf("net worth = %s, want 40000", got.NetWorth)
	}
	if !got.FixedExpensesAnnual.Equal(d("30600")) {
		t.Fatalf("fixed = %s, want 30600", got.FixedExpensesAnnual)
	}
	if !got.VariableExpensesAnnual.Equal(d("16200")) {
		t.Fatalf("variable = %s, want 16200", got.VariableExpensesAnnual)
	}
	if !got.TotalExpensesAnnual.Equal(d("46800")) {
		t.Fatalf("total expenses = %s, want 46800", got.TotalExpensesAnnual)
	}
	if got.Status != StatusVulnerable {
		t.Fatalf("status = %q, want vulnerable (ratio %v)", got.Status, got.FullSovereigntyRatio)
	}
}

func TestCalculateSovereigntyNegativeNetWorth(t *testing.T) {
	assets := &AssetSnapshot{
		CheckingSavings: d("1000"),
		StudentLoans:    d("60000"),
	}
	expenses := &ExpenseSnapshot{Housing: d("12000")}

	got, err := CalculateSovereignty(assets, expenses, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.NetWorth.IsNegative() {
		t.Fatalf("net worth = %s, want negative", got.NetWorth)
	}
	if got.FullSovereigntyRatio >= 0 {
		t.Fatalf("ratio = %v, want negative", got.FullSovereigntyRatio)
	}
	if got.Status != StatusVulnerable {
		t.Fatalf("status = %q, want vulnerable", got.Status)
	}
}

func TestCalculateSovereigntyZeroExpenses(t *testing.T) {
	assets := &AssetSnapshot{CheckingSavings: d("5000")}
	expenses := &ExpenseSnapshot{}

	got, err := CalculateSovereignty(assets, expenses, nil)
	if err != nil {
		t.Fatal(err)
	}
	// No expenses recorded: ratios stay zero instead of dividing by zero.
	if got.FullSovereigntyRatio != 0 {
		t.Fatalf("ratio = %v, want 0", got.FullSovereigntyRatio)
	}
	if got.CryptoRatio != 0 {
		t.Fatalf("crypto ratio = %v, want 0", got.CryptoRatio)
	}
}
