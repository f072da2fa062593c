package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// StatsController provides public aggregate statistics for the tracker.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics across all users.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var entryCount int64
	var entriesToday int64
	var totalSats int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.DailyEntry{}).Count(&entryCount).Error; err != nil {
		entryCount = 0
	}

	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.DailyEntry{}).
		Where("entry_date = ?", today).
		Count(&entriesToday).Error; err != nil {
		entriesToday = 0
	}

	if err := s.db.Model(&models.DailyEntry{}).
		Select("COALESCE(SUM(sats_purchased),0)").
		Scan(&totalSats).Error; err != nil {
		totalSats = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":         userCount,
		"entry_count":        entryCount,
		"entries_today":      entriesToday,
		"total_sats_tracked": totalSats,
	})
}
