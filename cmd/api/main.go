package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"shiftroster/internal/config"
	"shiftroster/internal/holiday"
	"shiftroster/internal/logging"
	"shiftroster/internal/server"
	"shiftroster/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "shiftroster-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	holidays, err := holiday.Load(cfg.HolidayPath)
	if err != nil {
		logger.Fatal("holiday table", zap.Error(err))
	}

	st := store.NewFileStore(cfg.DataDir, cfg.ConfigPath, logger)
	srv := server.New(st, holidays, cfg.DefaultMaxAssignments, logger)

	logger.Info("roster API listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Handler()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
