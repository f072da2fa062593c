package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetSnapshot is a user's current holdings and debts in USD. The system
// keeps exactly one current row per user: upserts overwrite in place and a
// background pruner removes duplicates left by upsert races.
//
// Bitcoin itself is absent here on purpose — its cost basis is derived from
// the daily entries' purchase fields.
type AssetSnapshot struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	OtherCrypto     decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"other_crypto"`
	Retirement      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"retirement"`
	Brokerage       decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"brokerage"`
	CheckingSavings decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"checking_savings"`
	EmergencyFund   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"emergency_fund"`
	HomeEquity      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"home_equity"`
	Vehicles        decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"vehicles"`
	OtherRealAssets decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"other_real_assets"`

	Mortgage       decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"mortgage"`
	AutoLoans      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"auto_loans"`
	StudentLoans   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"student_loans"`
	CreditCardDebt decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"credit_card_debt"`
	OtherDebt      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"other_debt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TraditionalInvestments sums retirement and brokerage accounts.
func (a *AssetSnapshot) TraditionalInvestments() decimal.Decimal {
	return a.Retirement.Add(a.Brokerage)
}

// CashLiquid sums checking/savings and the emergency fund.
func (a *AssetSnapshot) CashLiquid() decimal.Decimal {
	return a.CheckingSavings.Add(a.EmergencyFund)
}

// RealAssets sums home equity, vehicles and other real assets.
func (a *AssetSnapshot) RealAssets() decimal.Decimal {
	return a.HomeEquity.Add(a.Vehicles).Add(a.OtherRealAssets)
}

// TotalDebt sums all debt categories.
func (a *AssetSnapshot) TotalDebt() decimal.Decimal {
	return a.Mortgage.Add(a.AutoLoans).Add(a.StudentLoans).Add(a.CreditCardDebt).Add(a.OtherDebt)
}

// ExpenseSnapshot is a user's annualized spending, split into fixed and
// variable categories. Same single-current-row lifecycle as AssetSnapshot.
type ExpenseSnapshot struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Housing       decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"housing"`
	Utilities     decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"utilities"`
	Insurance     decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"insurance"`
	DebtPayments  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"debt_payments"`
	Subscriptions decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"subscriptions"`

	Food           decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"food"`
	Transportation decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"transportation"`
	Discretionary  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"discretionary"`
	OtherVariable  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"other_variable"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FixedAnnual sums the fixed expense categories.
func (e *ExpenseSnapshot) FixedAnnual() decimal.Decimal {
	return e.Housing.Add(e.Utilities).Add(e.Insurance).Add(e.DebtPayments).Add(e.Subscriptions)
}

// VariableAnnual sums the variable expense categories.
func (e *ExpenseSnapshot) VariableAnnual() decimal.Decimal {
	return e.Food.Add(e.Transportation).Add(e.Discretionary).Add(e.OtherVariable)
}

// TotalAnnual sums all expense categories.
func (e *ExpenseSnapshot) TotalAnnual() decimal.Decimal {
	return e.FixedAnnual().Add(e.VariableAnnual())
}
