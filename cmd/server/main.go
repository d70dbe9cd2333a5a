package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pojisteni/insurance-agency/internal/config"
	"github.com/pojisteni/insurance-agency/internal/database"
	"github.com/pojisteni/insurance-agency/internal/handler"
	"github.com/pojisteni/insurance-agency/internal/middleware"
	"github.com/pojisteni/insurance-agency/internal/queue"
	"github.com/pojisteni/insurance-agency/internal/repository"
	"github.com/pojisteni/insurance-agency/internal/router"
	queuepublisher "github.com/pojisteni/insurance-agency/internal/service"
	"github.com/pojisteni/insurance-agency/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	files, err := storage.NewFileStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("media dir: %v", err)
	}

	holders := repository.NewPolicyHolderRepo(db)
	policies := repository.NewPolicyRepo(db)
	events := repository.NewEventRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	holderH := handler.NewPolicyHolderHandler(holders, policies, events, files)
	policyH := handler.NewPolicyHandler(policies, holders)
	eventH := handler.NewEventHandler(events, holders, files, queuepublisher.PublishClaimReported)
	reportH := handler.NewReportHandler(holders, policies, events)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rdb := config.NewRedisClient()
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limit)
	router.RegisterPublic(e, holderH, policyH, eventH, reportH)
	router.RegisterProtected(e, cfg.JWTSecret, holderH, policyH, eventH)

	// Audit trail consumer; runs its own reconnect loop for the process
	// lifetime.
	go func() {
		if err := queue.StartClaimConsumer(); err != nil {
			log.Printf("claim-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
