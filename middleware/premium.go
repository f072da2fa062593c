package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// PremiumRequired gates premium analytics behind the user's subscription
// tier. Must run after AuthRequired.
func PremiumRequired(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := GetUserID(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
			ctx.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40111, "user not found")
			ctx.Abort()
			return
		}

		if !user.IsPremium() {
			utils.Error(ctx, http.StatusForbidden, 40201, "premium subscription required")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// GetUserID extracts the authenticated user ID set by AuthRequired.
func GetUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
