package main

import (
	"context"
	"fmt"

	"gear4music/internal/config"
	"gear4music/internal/database"
	"gear4music/internal/logger"
	"gear4music/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if cfg.AdminPasswordIsDefault {
		log.Warn("ADMIN_PASSWORD is not set; a newly seeded admin gets the built-in default password")
	}
	if err := database.Seed(context.Background(), db, log, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed: %v", err)
	}

	r, err := server.NewRouter(cfg, database.NewStore(db), log)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
