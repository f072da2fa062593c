package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyEntry stores one day's logged activities for a user, uniquely keyed by
// (user_id, entry_date). Resubmitting a day overwrites the existing row; the
// persisted score fields are recomputed on every write.
type DailyEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_entries_user_date;not null" json:"user_id"`
	EntryDate time.Time `gorm:"uniqueIndex:idx_entries_user_date;type:date;not null" json:"entry_date"`

	HomeCookedMeals     int    `json:"home_cooked_meals"`
	JunkFood            bool   `json:"junk_food"`
	ExerciseMinutes     int    `json:"exercise_minutes"`
	StrengthTraining    bool   `json:"strength_training"`
	NoSpending          bool   `json:"no_spending"`
	InvestedBitcoin     bool   `json:"invested_bitcoin"`
	Meditation          bool   `json:"meditation"`
	Gratitude           bool   `json:"gratitude"`
	ReadOrLearned       bool   `json:"read_or_learned"`
	EnvironmentalAction bool   `json:"environmental_action"`
	Note                string `gorm:"size:1024" json:"note"`

	// Bitcoin accumulation fields feed the sovereignty calculator and the
	// milestone tracker.
	SatsPurchased       int64           `gorm:"default:0" json:"sats_purchased"`
	BtcPurchased        decimal.Decimal `gorm:"type:decimal(18,8);default:0" json:"btc_purchased"`
	InvestmentAmountUSD decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"investment_amount_usd"`

	// Denormalized score for the day, recomputed on upsert.
	ScoreTotal     int                `json:"score_total"`
	ScoreMax       int                `json:"score_max"`
	ScorePercent   float64            `json:"score_percent"`
	ScoreBreakdown map[string]float64 `gorm:"serializer:json" json:"score_breakdown"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activities extracts the scoring engine input from a stored entry.
func (e *DailyEntry) Activities() DailyActivities {
	return DailyActivities{
		HomeCookedMeals:     float64(e.HomeCookedMeals),
		JunkFood:            e.JunkFood,
		ExerciseMinutes:     float64(e.ExerciseMinutes),
		StrengthTraining:    e.StrengthTraining,
		NoSpending:          e.NoSpending,
		InvestedBitcoin:     e.InvestedBitcoin,
		Meditation:          e.Meditation,
		Gratitude:           e.Gratitude,
		ReadOrLearned:       e.ReadOrLearned,
		EnvironmentalAction: e.EnvironmentalAction,
	}
}

// BeforeCreate normalizes the entry date to local midnight so the unique
// (user, date) key compares on calendar day rather than timestamp.
func (e *DailyEntry) BeforeCreate(tx *gorm.DB) error {
	e.EntryDate = DayStart(e.EntryDate)
	return nil
}

// DayStart truncates a timestamp to local midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
