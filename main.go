package main

import (
	"time"

	"github.com/quillhub/quill/config"
	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/routes"
	"github.com/quillhub/quill/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	// Sessions live in Redis when reachable, in memory otherwise.
	store := utils.NewSessionStore(utils.GetRedis(), time.Duration(cfg.SessionTTLHours)*time.Hour)

	r := routes.SetupRouter(db, store)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
