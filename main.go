package main

import (
	"time"

	"github.com/sovtrack/sovtrack/config"
	"github.com/sovtrack/sovtrack/models"
	"github.com/sovtrack/sovtrack/routes"
	"github.com/sovtrack/sovtrack/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Path{},
		&models.DailyEntry{},
		&models.AssetSnapshot{},
		&models.ExpenseSnapshot{},
		&models.CoachingSession{},
		&models.BillingEvent{},
	)

	if err := models.SeedPaths(db); err != nil {
		utils.Sugar.Fatalf("path seeding failed: %v", err)
	}
	// Path weights may have been tuned between deploys; drop the cached list.
	utils.InvalidateByPrefix("cache:paths")

	oracle := utils.NewPriceOracle(cfg)
	coach := utils.NewCoachClient(cfg)

	r := routes.SetupRouter(db, oracle, coach)

	// Background cleanup for duplicate snapshot rows (best-effort)
	utils.StartSnapshotPruner(time.Duration(cfg.SnapshotPruneMinutes) * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
