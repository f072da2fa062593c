package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/utils"
)

// PathController exposes the six predefined lifestyle paths and lets a user
// select one.
type PathController struct {
	db *gorm.DB
}

// NewPathController creates a new controller instance.
func NewPathController(db *gorm.DB) *PathController {
	return &PathController{db: db}
}

const pathsCacheKey = "cache:paths:all"

// ListPaths returns every path with its scoring configuration. Paths change
// rarely, so the response is cached aggressively.
func (p *PathController) ListPaths(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(pathsCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var paths []models.Path
	if err := p.db.Order("id ASC").Find(&paths).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load paths")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: paths}
	utils.CacheSetJSON(pathsCacheKey, wrapper, time.Hour)
	utils.Success(ctx, paths)
}

// SelectPath sets the authenticated user's active path.
func (p *PathController) SelectPath(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	type request struct {
		Slug string `json:"slug" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var path models.Path
	if err := p.db.Where("slug = ?", req.Slug).First(&path).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "unknown path")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load path")
		return
	}

	if err := p.db.Model(&models.User{}).Where("id = ?", userID).Update("path_slug", path.Slug).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to select path")
		return
	}

	utils.Success(ctx, gin.H{"path": path})
}
