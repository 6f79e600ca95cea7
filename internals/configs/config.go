package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"claimcenter_backend/internals/helpers/storage"
)

var (
	JWTSecret   string
	JWTTTL      time.Duration
	AppTimezone string
)

const defaultJWTTTLHours = 24

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] .env not found, using system environment")
		} else {
			log.Println("[CONFIG] .env loaded")
		}
	} else {
		log.Println("[CONFIG] running in Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", defaultJWTTTLHours)) * time.Hour
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Bangkok")

	if JWTSecret == "" {
		log.Println("[CONFIG] JWT_SECRET belum diset!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG] %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[CONFIG] %s=%q is not a bool, using %t", key, v, def)
		return def
	}
	return b
}

// StorageConfigFromEnv reads STORAGE_DRIVER and the matching driver block.
// s3:  S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_PUBLIC_URL
// oss: ALI_OSS_ENDPOINT, ALI_OSS_BUCKET, ALI_OSS_ACCESS_KEY, ALI_OSS_SECRET_KEY,
// ALI_OSS_SECURITY_TOKEN, ALI_OSS_PUBLIC_BASE
func StorageConfigFromEnv() storage.Config {
	driver := strings.ToLower(GetEnv("STORAGE_DRIVER", storage.DriverS3))
	if driver == storage.DriverOSS {
		return storage.Config{
			Driver:        driver,
			Endpoint:      GetEnv("ALI_OSS_ENDPOINT"),
			Bucket:        GetEnv("ALI_OSS_BUCKET"),
			AccessKey:     GetEnv("ALI_OSS_ACCESS_KEY"),
			SecretKey:     GetEnv("ALI_OSS_SECRET_KEY"),
			SecurityToken: GetEnv("ALI_OSS_SECURITY_TOKEN"),
			PublicBase:    strings.TrimRight(GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		}
	}
	return storage.Config{
		Driver:     driver,
		Bucket:     GetEnv("S3_BUCKET"),
		Region:     GetEnv("S3_REGION", "us-east-1"),
		Endpoint:   GetEnv("S3_ENDPOINT"),
		AccessKey:  GetEnv("S3_ACCESS_KEY"),
		SecretKey:  GetEnv("S3_SECRET_KEY"),
		PublicBase: strings.TrimRight(GetEnv("S3_PUBLIC_URL"), "/"),
	}
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isRecordNotFound(err):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
