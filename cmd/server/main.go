package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/scholarbridge/scholarship-portal/internal/config"
	"github.com/scholarbridge/scholarship-portal/internal/database"
	"github.com/scholarbridge/scholarship-portal/internal/handler"
	"github.com/scholarbridge/scholarship-portal/internal/middleware"
	"github.com/scholarbridge/scholarship-portal/internal/queue"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
	"github.com/scholarbridge/scholarship-portal/internal/router"
)

func main() {
	// Load a local .env if present; real deployments set the variables
	// in the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the response cache and
	// the rate limiter without affecting anything else.
	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	scholarships := repository.NewScholarshipRepo(db)
	applications := repository.NewApplicationRepo(db)
	payments := repository.NewPaymentRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Handlers.
	healthH := handler.NewHealthHandler(db)
	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewScholarshipHandler(scholarships, reviews)
	appH := handler.NewApplicationHandler(applications, scholarships)
	payH := handler.NewPaymentHandler(cfg, applications, payments)
	reviewH := handler.NewReviewHandler(reviews, users)
	adminUserH := handler.NewAdminUserHandler(users)
	adminSchH := handler.NewAdminScholarshipHandler(scholarships)

	e := echo.New() // Create Echo instance

	// Public browse routes sit behind the Redis response cache and the
	// token-bucket rate limiter; both degrade to pass-through when
	// Redis is unavailable.
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e, healthH, payH)
	router.RegisterPublic(e, catalogH, limitMW, cacheMW)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStudent(e, appH, payH, reviewH, adminUserH, cfg.JWTSecret)
	router.RegisterModerator(e, reviewH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminUserH, adminSchH, cfg.JWTSecret)

	// Background audit consumer for payment.confirmed events.  It runs
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
