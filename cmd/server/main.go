package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/landing-page-manager/internal/config"
	"github.com/iliyamo/landing-page-manager/internal/database"
	"github.com/iliyamo/landing-page-manager/internal/handler"
	"github.com/iliyamo/landing-page-manager/internal/middleware"
	"github.com/iliyamo/landing-page-manager/internal/queue"
	"github.com/iliyamo/landing-page-manager/internal/repository"
	"github.com/iliyamo/landing-page-manager/internal/router"
	queue_publisher "github.com/iliyamo/landing-page-manager/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter become
	// pass-throughs and cache invalidation a no-op.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	configs := repository.NewConfigurationRepo(db)

	invalidator := middleware.NewInvalidator(cacheCfg, rdb)

	authH := handler.NewAuthHandler(cfg, users, sessions)
	configH := handler.NewConfigurationHandler(configs, invalidator, queue_publisher.PublishConfigChanged)
	landingH := handler.NewLandingHandler(configs)

	// The audit consumer keeps its own connection and reconnects forever;
	// a broker outage never takes the server down.
	go func() {
		if err := queue.StartConfigAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Auth:     authH,
		Configs:  configH,
		Landing:  landingH,
		Sessions: sessions,
		Redis:    rdb,
		CacheCfg: cacheCfg,
		RateCfg:  rateCfg,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
