package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// FinanceController manages asset and expense snapshots and runs the
// sovereignty calculation over them.
type FinanceController struct {
	db *gorm.DB
}

// NewFinanceController creates a new controller instance.
func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{db: db}
}

type assetRequest struct {
	OtherCrypto     float64 `json:"other_crypto" binding:"min=0"`
	Retirement      float64 `json:"retirement" binding:"min=0"`
	Brokerage       float64 `json:"brokerage" binding:"min=0"`
	CheckingSavings float64 `json:"checking_savings" binding:"min=0"`
	EmergencyFund   float64 `json:"emergency_fund" binding:"min=0"`
	HomeEquity      float64 `json:"home_equity" binding:"min=0"`
	Vehicles        float64 `json:"vehicles" binding:"min=0"`
	OtherRealAssets float64 `json:"other_real_assets" binding:"min=0"`

	Mortgage       float64 `json:"mortgage" binding:"min=0"`
	AutoLoans      float64 `json:"auto_loans" binding:"min=0"`
	StudentLoans   float64 `json:"student_loans" binding:"min=0"`
	CreditCardDebt float64 `json:"credit_card_debt" binding:"min=0"`
	OtherDebt      float64 `json:"other_debt" binding:"min=0"`
}

type expenseRequest struct {
	Housing       float64 `json:"housing" binding:"min=0"`
	Utilities     float64 `json:"utilities" binding:"min=0"`
	Insurance     float64 `json:"insurance" binding:"min=0"`
	DebtPayments  float64 `json:"debt_payments" binding:"min=0"`
	Subscriptions float64 `json:"subscriptions" binding:"min=0"`

	Food           float64 `json:"food" binding:"min=0"`
	Transportation float64 `json:"transportation" binding:"min=0"`
	Discretionary  float64 `json:"discretionary" binding:"min=0"`
	OtherVariable  float64 `json:"other_variable" binding:"min=0"`
}

func usd(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// UpsertAssets replaces the user's current asset snapshot.
func (f *FinanceController) UpsertAssets(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req assetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid asset snapshot, amounts must be non-negative numbers")
		return
	}

	snap := models.AssetSnapshot{
		UserID:          userID,
		OtherCrypto:     usd(req.OtherCrypto),
		Retirement:      usd(req.Retirement),
		Brokerage:       usd(req.Brokerage),
		CheckingSavings: usd(req.CheckingSavings),
		EmergencyFund:   usd(req.EmergencyFund),
		HomeEquity:      usd(req.HomeEquity),
		Vehicles:        usd(req.Vehicles),
		OtherRealAssets: usd(req.OtherRealAssets),
		Mortgage:        usd(req.Mortgage),
		AutoLoans:       usd(req.AutoLoans),
		StudentLoans:    usd(req.StudentLoans),
		CreditCardDebt:  usd(req.CreditCardDebt),
		OtherDebt:       usd(req.OtherDebt),
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		var existing models.AssetSnapshot
		findErr := tx.Where("user_id = ?", userID).Order("id DESC").First(&existing).Error
		if findErr == nil {
			snap.ID = existing.ID
			snap.CreatedAt = existing.CreatedAt
			return tx.Save(&snap).Error
		}
		if findErr != gorm.ErrRecordNotFound {
			return findErr
		}
		return tx.Create(&snap).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to save asset snapshot")
		return
	}

	utils.PruneSnapshotsForUser(userID)
	utils.Success(ctx, snap)
}

// UpsertExpenses replaces the user's current expense snapshot.
func (f *FinanceController) UpsertExpenses(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req expenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid expense snapshot, amounts must be non-negative numbers")
		return
	}

	snap := models.ExpenseSnapshot{
		UserID:         userID,
		Housing:        usd(req.Housing),
		Utilities:      usd(req.Utilities),
		Insurance:      usd(req.Insurance),
		DebtPayments:   usd(req.DebtPayments),
		Subscriptions:  usd(req.Subscriptions),
		Food:           usd(req.Food),
		Transportation: usd(req.Transportation),
		Discretionary:  usd(req.Discretionary),
		OtherVariable:  usd(req.OtherVariable),
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ExpenseSnapshot
		findErr := tx.Where("user_id = ?", userID).Order("id DESC").First(&existing).Error
		if findErr == nil {
			snap.ID = existing.ID
			snap.CreatedAt = existing.CreatedAt
			return tx.Save(&snap).Error
		}
		if findErr != gorm.ErrRecordNotFound {
			return findErr
		}
		return tx.Create(&snap).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to save expense snapshot")
		return
	}

	utils.PruneSnapshotsForUser(userID)
	utils.Success(ctx, snap)
}

// GetAssets returns the user's current asset snapshot.
func (f *FinanceController) GetAssets(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var snap models.AssetSnapshot
	if err := f.db.Where("user_id = ?", userID).Order("id DESC").First(&snap).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40440, "no asset snapshot yet")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load asset snapshot")
		return
	}
	utils.Success(ctx, snap)
}

// GetExpenses returns the user's current expense snapshot.
func (f *FinanceController) GetExpenses(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var snap models.ExpenseSnapshot
	if err := f.db.Where("user_id = ?", userID).Order("id DESC").First(&snap).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40441, "no expense snapshot yet")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load expense snapshot")
		return
	}
	utils.Success(ctx, snap)
}

// Calculate derives the user's sovereignty picture from their current
// snapshots and cumulative Bitcoin purchases. Responds 409 when either
// snapshot is missing so clients can prompt data entry.
func (f *FinanceController) Calculate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	assets, expenses, err := f.loadSnapshots(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to load snapshots")
		return
	}

	purchases, err := loadPurchases(f.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to load purchase history")
		return
	}

	calc, err := models.CalculateSovereignty(assets, expenses, purchases)
	if err != nil {
		if mde, ok := err.(*models.MissingDataError); ok {
			utils.Error(ctx, http.StatusConflict, 40910, mde.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50036, "sovereignty calculation failed")
		return
	}

	utils.Success(ctx, calc)
}

// loadSnapshots fetches the newest snapshot of each kind, returning nil for a
// kind that does not exist yet.
func (f *FinanceController) loadSnapshots(userID uint) (*models.AssetSnapshot, *models.ExpenseSnapshot, error) {
	var assets *models.AssetSnapshot
	var a models.AssetSnapshot
	err := f.db.Where("user_id = ?", userID).Order("id DESC").First(&a).Error
	if err == nil {
		assets = &a
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	var expenses *models.ExpenseSnapshot
	var e models.ExpenseSnapshot
	err = f.db.Where("user_id = ?", userID).Order("id DESC").First(&e).Error
	if err == nil {
		expenses = &e
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	return assets, expenses, nil
}

// loadPurchases reads the Bitcoin purchase fields off every daily entry, in
// date order. Shared with the metrics controller.
func loadPurchases(db *gorm.DB, userID uint) ([]models.BitcoinPurchase, error) {
	var entries []models.DailyEntry
	if err := db.Select("entry_date", "sats_purchased", "investment_amount_usd").
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	purchases := make([]models.BitcoinPurchase, 0, len(entries))
	for _, e := range entries {
		purchases = append(purchases, models.BitcoinPurchase{
			Sats:        e.SatsPurchased,
			InvestedUSD: e.InvestmentAmountUSD,
		})
	}
	return purchases, nil
}
