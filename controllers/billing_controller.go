package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/config"
	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// BillingController ingests billing-provider webhooks and exposes the user's
// subscription status. Webhook deliveries are authenticated with an HMAC
// signature instead of a user token.
type BillingController struct {
	db *gorm.DB
}

// NewBillingController creates a new controller instance.
func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{db: db}
}

type billingEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		UserID           uint   `json:"user_id"`
		Tier             string `json:"tier"`
		CurrentPeriodEnd int64  `json:"current_period_end"`
	} `json:"data"`
}

// Webhook processes a subscription lifecycle event. Replayed deliveries are
// acknowledged without reapplying, keyed on the provider's event id.
func (b *BillingController) Webhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, 1<<20))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "unreadable webhook body")
		return
	}

	// Provider signature verification runs only when a shared secret is
	// configured; deployments that terminate verification upstream leave the
	// secret empty.
	if secret := config.Get().BillingWebhookSecret; secret != "" {
		if !verifySignature(body, ctx.GetHeader("X-Billing-Signature"), secret) {
			utils.Error(ctx, http.StatusUnauthorized, 40120, "invalid webhook signature")
			return
		}
	}

	var event billingEvent
	if err := json.Unmarshal(body, &event); err != nil || event.ID == "" || event.Type == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "malformed webhook event")
		return
	}

	var seen models.BillingEvent
	if err := b.db.Where("event_id = ?", event.ID).First(&seen).Error; err == nil {
		utils.Success(ctx, gin.H{"status": "already processed"})
		return
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		record := models.BillingEvent{
			EventID:       event.ID,
			EventType:     event.Type,
			UserID:        event.Data.UserID,
			PayloadDigest: payloadDigest(body),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return applyBillingEvent(tx, event)
	})
	if err != nil {
		// A concurrent delivery may have won the unique-index race; treat
		// duplicates as processed.
		if strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "duplicate") {
			utils.Success(ctx, gin.H{"status": "already processed"})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to process billing event")
		return
	}

	utils.Success(ctx, gin.H{"status": "processed"})
}

// applyBillingEvent mutates the user's tier according to the event type.
// Unknown event types are recorded but otherwise ignored.
func applyBillingEvent(tx *gorm.DB, event billingEvent) error {
	if event.Data.UserID == 0 {
		return nil
	}

	var user models.User
	if err := tx.First(&user, event.Data.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	switch event.Type {
	case "subscription.created", "subscription.renewed", "subscription.updated":
		user.Tier = models.TierPremium
		if event.Data.Tier != "" {
			user.Tier = event.Data.Tier
		}
		if event.Data.CurrentPeriodEnd > 0 {
			t := time.Unix(event.Data.CurrentPeriodEnd, 0)
			user.PremiumUntil = &t
		}
	case "subscription.canceled", "subscription.expired":
		user.Tier = models.TierFree
		user.PremiumUntil = nil
	default:
		return nil
	}

	return tx.Save(&user).Error
}

// Status reports the authenticated user's subscription tier.
func (b *BillingController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := b.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	utils.Success(ctx, gin.H{
		"tier":          user.Tier,
		"premium_until": user.PremiumUntil,
		"is_premium":    user.IsPremium(),
	})
}

// payloadDigest is the hex SHA-256 of the raw delivery body, stored alongside
// the event id for replay auditing.
func payloadDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// verifySignature checks the hex HMAC-SHA256 of the raw body against the
// shared webhook secret.
func verifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
