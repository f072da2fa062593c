package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

const entryDateLayout = "2006-01-02"

// EntryController handles daily activity logging. Submitting a day runs the
// scoring engine and persists the result on the entry; resubmission
// overwrites the previous log for that day.
type EntryController struct {
	db *gorm.DB
}

// NewEntryController creates a new controller instance.
func NewEntryController(db *gorm.DB) *EntryController {
	return &EntryController{db: db}
}

type entryRequest struct {
	HomeCookedMeals     int     `json:"home_cooked_meals" binding:"min=0"`
	JunkFood            bool    `json:"junk_food"`
	ExerciseMinutes     int     `json:"exercise_minutes" binding:"min=0"`
	StrengthTraining    bool    `json:"strength_training"`
	NoSpending          bool    `json:"no_spending"`
	InvestedBitcoin     bool    `json:"invested_bitcoin"`
	Meditation          bool    `json:"meditation"`
	Gratitude           bool    `json:"gratitude"`
	ReadOrLearned       bool    `json:"read_or_learned"`
	EnvironmentalAction bool    `json:"environmental_action"`
	Note                string  `json:"note" binding:"max=1024"`
	SatsPurchased       int64   `json:"sats_purchased" binding:"min=0"`
	BtcPurchased        float64 `json:"btc_purchased" binding:"min=0"`
	InvestmentAmountUSD float64 `json:"investment_amount_usd" binding:"min=0"`
}

// UpsertEntry creates or overwrites the authenticated user's log for one day
// and returns the computed score.
func (e *EntryController) UpsertEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	day, err := time.ParseInLocation(entryDateLayout, ctx.Param("date"), time.Local)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid entry date, expected YYYY-MM-DD")
		return
	}

	var req entryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	cfg, err := e.pathConfigFor(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load path configuration")
		return
	}

	entry := models.DailyEntry{
		UserID:              userID,
		EntryDate:           models.DayStart(day),
		HomeCookedMeals:     req.HomeCookedMeals,
		JunkFood:            req.JunkFood,
		ExerciseMinutes:     req.ExerciseMinutes,
		StrengthTraining:    req.StrengthTraining,
		NoSpending:          req.NoSpending,
		InvestedBitcoin:     req.InvestedBitcoin,
		Meditation:          req.Meditation,
		Gratitude:           req.Gratitude,
		ReadOrLearned:       req.ReadOrLearned,
		EnvironmentalAction: req.EnvironmentalAction,
		Note:                utils.Sanitize(req.Note),
		SatsPurchased:       req.SatsPurchased,
		BtcPurchased:        decimal.NewFromFloat(req.BtcPurchased),
		InvestmentAmountUSD: decimal.NewFromFloat(req.InvestmentAmountUSD),
	}

	score := models.CalculateDailyScore(entry.Activities(), cfg)
	entry.ScoreTotal = score.Total
	entry.ScoreMax = score.MaxScore
	entry.ScorePercent = score.Percentage
	entry.ScoreBreakdown = score.Breakdown

	err = e.db.Transaction(func(tx *gorm.DB) error {
		var existing models.DailyEntry
		findErr := tx.Where("user_id = ? AND entry_date = ?", userID, entry.EntryDate).First(&existing).Error
		if findErr == nil {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			return tx.Save(&entry).Error
		}
		if findErr != gorm.ErrRecordNotFound {
			return findErr
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to save entry")
		return
	}

	utils.Success(ctx, gin.H{"entry": entry, "score": score})
}

// GetEntry returns one day's log.
func (e *EntryController) GetEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	day, err := time.ParseInLocation(entryDateLayout, ctx.Param("date"), time.Local)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid entry date, expected YYYY-MM-DD")
		return
	}

	var entry models.DailyEntry
	if err := e.db.Where("user_id = ? AND entry_date = ?", userID, models.DayStart(day)).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40430, "no entry for that day")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load entry")
		return
	}

	utils.Success(ctx, entry)
}

// ListEntries returns entries in an inclusive date range, newest first.
func (e *EntryController) ListEntries(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	to := models.DayStart(time.Now())
	from := to.AddDate(0, 0, -29)

	if v := ctx.Query("from"); v != "" {
		d, err := time.ParseInLocation(entryDateLayout, v, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40011, "invalid 'from' date")
			return
		}
		from = models.DayStart(d)
	}
	if v := ctx.Query("to"); v != "" {
		d, err := time.ParseInLocation(entryDateLayout, v, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40012, "invalid 'to' date")
			return
		}
		to = models.DayStart(d)
	}
	if to.Before(from) {
		utils.Error(ctx, http.StatusBadRequest, 40013, "'to' must not precede 'from'")
		return
	}
	if to.Sub(from) > 366*24*time.Hour {
		utils.Error(ctx, http.StatusBadRequest, 40014, "range too large, one year maximum")
		return
	}

	var entries []models.DailyEntry
	if err := e.db.Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load entries")
		return
	}

	utils.Success(ctx, gin.H{
		"from":    from.Format(entryDateLayout),
		"to":      to.Format(entryDateLayout),
		"entries": entries,
	})
}

// pathConfigFor resolves the scoring config for the user's selected path,
// falling back to the balanced defaults when the user has not picked one.
func (e *EntryController) pathConfigFor(userID uint) (models.PathConfig, error) {
	var user models.User
	if err := e.db.First(&user, userID).Error; err != nil {
		return models.PathConfig{}, err
	}

	var path models.Path
	err := e.db.Where("slug = ?", user.PathSlug).First(&path).Error
	if err == gorm.ErrRecordNotFound {
		return models.DefaultPathConfig(), nil
	}
	if err != nil {
		return models.PathConfig{}, err
	}
	return path.Config, nil
}
