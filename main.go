package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"claimcenter_backend/internals/configs"
	database "claimcenter_backend/internals/databases"
	fileService "claimcenter_backend/internals/features/claims/claim_files/service"
	claimRepo "claimcenter_backend/internals/features/claims/repository"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/storage"
	middlewares "claimcenter_backend/internals/middlewares"
	routes "claimcenter_backend/internals/route"
	"claimcenter_backend/internals/scheduler"
	"claimcenter_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 55) * 1024 * 1024, // 5 file x 10MB + form
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// selaras dengan statement_timeout di DB
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("[ERROR] migrate: %v", err)
		}
	}
	if configs.GetEnvBool("SEED_ON_START", false) {
		if err := seeds.RunAllSeeds(database.DB); err != nil {
			log.Fatalf("[ERROR] seed: %v", err)
		}
	}
	database.WarmUpQueries()

	// 🗂 evidence storage
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.New(initCtx, configs.StorageConfigFromEnv())
	initCancel()
	if err != nil {
		log.Fatalf("[ERROR] storage: %v", err)
	}

	// ⏱ scheduler setelah DB + storage siap
	retention := time.Duration(configs.GetEnvInt("EVIDENCE_RETENTION_DAYS", 30)) * 24 * time.Hour
	reaper := fileService.NewEvidenceReaper(claimRepo.NewGormRepository(database.DB), store, retention)
	sched, err := scheduler.Start(
		scheduler.BlacklistCleanup(database.DB, configs.GetEnv("BLACKLIST_CLEANUP_CRON")),
		scheduler.EvidenceReaper(reaper, configs.GetEnv("REAPER_CRON")),
	)
	if err != nil {
		log.Fatalf("[ERROR] scheduler: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, store)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("[INFO] Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: HTTP, cron, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		log.Println("[WARN] cron jobs still running at shutdown")
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
