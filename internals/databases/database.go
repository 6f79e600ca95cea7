package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"claimcenter_backend/internals/configs"
)

var DB *gorm.DB

// DSN builds the postgres URL from DB_* variables. statement_timeout keeps
// a slow query from outliving the 5s request budget.
func DSN() string {
	if raw := configs.GetEnv("DATABASE_URL"); raw != "" {
		return raw
	}
	q := url.Values{}
	q.Set("sslmode", configs.GetEnv("DB_SSLMODE", "require"))
	q.Set("application_name", configs.GetEnv("DB_APP_NAME", "claimcenter"))
	q.Set("options", fmt.Sprintf("-c statement_timeout=%d", configs.GetEnvInt("DB_STATEMENT_TIMEOUT_MS", 3000)))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(configs.GetEnv("DB_USER"), configs.GetEnv("DB_PASSWORD")),
		Host:     configs.GetEnv("DB_HOST", "localhost") + ":" + configs.GetEnv("DB_PORT", "5432"),
		Path:     "/" + configs.GetEnv("DB_NAME", "claimcenter"),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func ConnectDB() {
	log.Println("[INFO] Connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connect failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[ERROR] pool tune: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries fills the pool in the background once the server is up.
func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx); err != nil {
			log.Printf("[WARN] warm-up ping: %v", err)
			return
		}
		var n int64
		if err := DB.WithContext(ctx).Raw(`SELECT COUNT(*) FROM branches WHERE branch_is_active`).Scan(&n).Error; err != nil {
			log.Printf("[WARN] warm-up query: %v", err)
		}
	}()
}

func Ping(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
