package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// MetricsController serves the premium Bitcoin analytics: live valuation,
// milestone progress and DCA projections.
type MetricsController struct {
	db     *gorm.DB
	oracle *utils.PriceOracle
}

// NewMetricsController creates a new controller instance.
func NewMetricsController(db *gorm.DB, oracle *utils.PriceOracle) *MetricsController {
	return &MetricsController{db: db, oracle: oracle}
}

// BitcoinMetrics returns the user's stack valued at the live price, with
// unrealized gain against cost basis and milestone progress.
func (m *MetricsController) BitcoinMetrics(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	series, totalSats, investedUSD, err := m.loadSatsSeries(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load purchase history")
		return
	}

	price, err := m.oracle.CurrentPrice(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusBadGateway, 50201, "btc price temporarily unavailable")
		return
	}

	totalBtc := decimal.NewFromInt(totalSats).DivRound(decimal.NewFromInt(100_000_000), 8)
	currentValue := totalBtc.Mul(price).Round(2)
	unrealized := currentValue.Sub(investedUSD)

	avgPrice := decimal.Zero
	if totalBtc.IsPositive() {
		avgPrice = investedUSD.DivRound(totalBtc, 2)
	}

	utils.Success(ctx, gin.H{
		"btc_price_usd":       price,
		"total_sats":          totalSats,
		"total_btc":           totalBtc,
		"invested_usd":        investedUSD,
		"avg_btc_price":       avgPrice,
		"current_value_usd":   currentValue,
		"unrealized_gain_usd": unrealized,
		"milestones":          models.ComputeMilestones(series),
	})
}

// SimulateDCA projects the five fixed daily-spend scenarios at the live price.
// The horizon defaults to a year; "days" caps at ten years.
func (m *MetricsController) SimulateDCA(ctx *gin.Context) {
	days := 365
	if v := ctx.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 3650 {
			utils.Error(ctx, http.StatusBadRequest, 40030, "days must be an integer between 1 and 3650")
			return
		}
		days = n
	}

	price, err := m.oracle.CurrentPrice(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusBadGateway, 50201, "btc price temporarily unavailable")
		return
	}

	utils.Success(ctx, gin.H{
		"btc_price_usd": price,
		"days":          days,
		"scenarios":     models.SimulateDCA(days, price),
	})
}

// loadSatsSeries builds the cumulative sats series from the user's entries in
// date order, alongside total sats and total USD invested.
func (m *MetricsController) loadSatsSeries(userID uint) ([]models.SatsPoint, int64, decimal.Decimal, error) {
	var entries []models.DailyEntry
	if err := m.db.Select("entry_date", "sats_purchased", "investment_amount_usd").
		Where("user_id = ? AND (sats_purchased > 0 OR investment_amount_usd > 0)", userID).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	series := make([]models.SatsPoint, 0, len(entries))
	var cumulative int64
	invested := decimal.Zero
	for _, e := range entries {
		if e.SatsPurchased > 0 {
			cumulative += e.SatsPurchased
		}
		if e.InvestmentAmountUSD.IsPositive() {
			invested = invested.Add(e.InvestmentAmountUSD)
		}
		series = append(series, models.SatsPoint{Date: e.EntryDate, CumulativeSats: cumulative})
	}
	return series, cumulative, invested, nil
}
