package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"emabill/m/internal/api"
	"emabill/m/internal/config"
	"emabill/m/internal/database"
	"emabill/m/internal/migrations"
	"emabill/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadOpeningStock(db, logger, "assets/opening_stock.csv")

	handler := api.New(db, cfg.Secret, logger)

	logger.Info("EMA billing server starting", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
