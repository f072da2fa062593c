package utils

import (
	"time"

	"github.com/sovtrack/sovtrack/config"
	"github.com/sovtrack/sovtrack/models"
)

// StartSnapshotPruner launches a background goroutine that periodically
// deletes all but the newest asset and expense snapshot per user. The storage
// layer does not enforce single-row-per-user uniqueness, so upsert races can
// leave duplicates behind; this job is the cleanup side of that contract.
// Best-effort, logs failures.
func StartSnapshotPruner(interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			if err := db.Exec(
				"DELETE a FROM asset_snapshots a JOIN asset_snapshots b ON a.user_id = b.user_id AND a.id < b.id",
			).Error; err != nil && Sugar != nil {
				Sugar.Warnf("asset snapshot prune failed: %v", err)
			}
			if err := db.Exec(
				"DELETE e FROM expense_snapshots e JOIN expense_snapshots f ON e.user_id = f.user_id AND e.id < f.id",
			).Error; err != nil && Sugar != nil {
				Sugar.Warnf("expense snapshot prune failed: %v", err)
			}
		}
	}()
}

// PruneSnapshotsForUser removes duplicate snapshot rows for one user, keeping
// the newest. Called inline after an upsert so the common case never waits
// for the background pass.
func PruneSnapshotsForUser(userID uint) {
	db := config.DB()
	if db == nil {
		return
	}
	var keep models.AssetSnapshot
	if err := db.Where("user_id = ?", userID).Order("id DESC").First(&keep).Error; err == nil {
		db.Where("user_id = ? AND id <> ?", userID, keep.ID).Delete(&models.AssetSnapshot{})
	}
	var keepExp models.ExpenseSnapshot
	if err := db.Where("user_id = ?", userID).Order("id DESC").First(&keepExp).Error; err == nil {
		db.Where("user_id = ? AND id <> ?", userID, keepExp.ID).Delete(&models.ExpenseSnapshot{})
	}
}
