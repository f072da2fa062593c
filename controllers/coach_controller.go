package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// CoachController answers user questions through the coaching provider,
// grounding every request in the user's recent scores and Bitcoin history.
type CoachController struct {
	db    *gorm.DB
	coach *utils.CoachClient
}

// NewCoachController creates a new controller instance.
func NewCoachController(db *gorm.DB, coach *utils.CoachClient) *CoachController {
	return &CoachController{db: db, coach: coach}
}

// Ask builds the coaching context from the user's last week of entries and
// forwards the question. Sessions are persisted best-effort; a failed write
// never blocks the answer.
func (c *CoachController) Ask(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	type request struct {
		Question string `json:"question" binding:"required,min=3,max=2000"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "question must be between 3 and 2000 characters")
		return
	}
	question := utils.Sanitize(req.Question)

	cc, err := c.buildContext(userID, question)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to assemble coaching context")
		return
	}

	advice, err := c.coach.Ask(ctx.Request.Context(), cc)
	if err != nil {
		if err == utils.ErrMalformedCompletion {
			utils.Error(ctx, http.StatusBadGateway, 50211, "coach returned an unusable reply, try again")
			return
		}
		utils.Error(ctx, http.StatusBadGateway, 50210, "coaching provider unavailable")
		return
	}

	session := models.CoachingSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		Question:       question,
		MotivationTier: cc.MotivationTier,
		Insights:       joinLines(advice.Insights),
		Recommendation: advice.Recommendation,
	}
	if err := c.db.Create(&session).Error; err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("coaching session write failed: %v", err)
	}

	utils.Success(ctx, gin.H{
		"session_id":      session.ID,
		"motivation_tier": cc.MotivationTier,
		"advice":          advice,
	})
}

// History lists the user's past coaching sessions, newest first.
func (c *CoachController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var sessions []models.CoachingSession
	if err := c.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&sessions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load sessions")
		return
	}
	utils.Success(ctx, sessions)
}

// buildContext gathers the last seven scored days and the cumulative Bitcoin
// position into the provider context.
func (c *CoachController) buildContext(userID uint, question string) (utils.CoachContext, error) {
	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		return utils.CoachContext{}, err
	}

	var recent []models.DailyEntry
	if err := c.db.Select("entry_date", "score_total", "score_percent").
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Limit(7).
		Find(&recent).Error; err != nil {
		return utils.CoachContext{}, err
	}

	scores := make([]int, 0, len(recent))
	var pctSum float64
	for i := len(recent) - 1; i >= 0; i-- {
		scores = append(scores, recent[i].ScoreTotal)
		pctSum += recent[i].ScorePercent
	}
	avg := 0.0
	if len(recent) > 0 {
		avg = pctSum / float64(len(recent))
	}

	purchases, err := loadPurchases(c.db, userID)
	if err != nil {
		return utils.CoachContext{}, err
	}
	var totalSats int64
	invested := decimal.Zero
	for _, p := range purchases {
		if p.Sats > 0 {
			totalSats += p.Sats
		}
		if p.InvestedUSD.IsPositive() {
			invested = invested.Add(p.InvestedUSD)
		}
	}

	return utils.CoachContext{
		PathName:       user.PathSlug,
		RecentScores:   scores,
		AveragePercent: round1(avg),
		MotivationTier: classifyMotivation(avg, len(recent)),
		TotalSats:      totalSats,
		InvestedUSD:    invested.StringFixed(2),
		Question:       question,
	}, nil
}

// classifyMotivation buckets the week's average score percentage. A user with
// no logged days yet is always "starting".
func classifyMotivation(avgPercent float64, loggedDays int) string {
	switch {
	case loggedDays == 0:
		return "starting"
	case avgPercent >= 75:
		return "thriving"
	case avgPercent >= 50:
		return "steady"
	case avgPercent >= 25:
		return "building"
	default:
		return "slipping"
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
