package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/config"
	"github.com/givebridge/givebridge/internal/database"
	"github.com/givebridge/givebridge/internal/handler"
	"github.com/givebridge/givebridge/internal/middleware"
	"github.com/givebridge/givebridge/internal/payment"
	"github.com/givebridge/givebridge/internal/queue"
	"github.com/givebridge/givebridge/internal/repository"
	"github.com/givebridge/givebridge/internal/router"
)

func main() {
	// .env is a local-dev convenience; in deployment the variables come from
	// the environment and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter, the response cache and the live
	// notification feed. A nil client degrades all three gracefully.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	profiles := repository.NewProfileRepo(db)
	campaigns := repository.NewCampaignRepo(db)
	requests := repository.NewHelpRequestRepo(db)
	items := repository.NewDonationItemRepo(db)
	drives := repository.NewCommunityDriveRepo(db)
	inventory := repository.NewInventoryRepo(db)
	donations := repository.NewDonationRepo(db)
	notifications := repository.NewNotificationRepo(db)
	dashboard := repository.NewDashboardRepo(db)

	pay := payment.NewClient(cfg.PaymentURL)

	authH := handler.NewAuthHandler(cfg, users, tokens, profiles)
	profileH := handler.NewProfileHandler(profiles)
	ownerH := handler.NewOwnerHandler(profiles, campaigns, requests, items, drives, inventory)
	donationH := handler.NewDonationHandler(cfg, campaigns, donations, profiles, pay)
	notificationH := handler.NewNotificationHandler(notifications, rdb)
	dashboardH := handler.NewDashboardHandler(dashboard)
	publicH := handler.NewPublicHandler(campaigns, requests, items, drives, profiles)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterProfile(e, profileH, cfg.JWTSecret)
	router.RegisterContent(e, ownerH, cfg.JWTSecret)
	router.RegisterDonations(e, donationH, cfg.JWTSecret)
	router.RegisterNotifications(e, notificationH, cfg.JWTSecret)
	router.RegisterDashboard(e, dashboardH, cfg.JWTSecret)

	// Public browse sits behind the token-bucket limiter and the response
	// cache; both are Redis backed and turn into pass-throughs when Redis
	// is down.
	router.RegisterPublic(e, publicH,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewResponseCache(config.LoadCacheConfig(), rdb),
	)

	// The consumer turns donation.completed events into notification rows
	// and pushes them onto each recipient's live feed. It reconnects on its
	// own; a returned error only means it never got a first connection.
	go func() {
		if err := queue.StartNotificationConsumer(notifications, rdb); err != nil {
			log.Printf("notification consumer disabled: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
