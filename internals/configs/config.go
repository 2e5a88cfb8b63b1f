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
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret     string
	JWTAccessTTL  time.Duration
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	CorsOrigins   string
	DBAutoMigrate bool
	BlacklistTTL  time.Duration
	BlacklistCron string
	SlowSQLMillis int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("APP_ENV") == "production" {
		log.Println("🚀 Running in production, menggunakan ENV dari sistem")
	} else if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTAccessTTL = GetEnvDuration("JWT_ACCESS_TTL", 24*time.Hour)

	AdminUsername = GetEnv("ADMIN_USERNAME", "admin")
	AdminEmail = GetEnv("ADMIN_EMAIL", "admin@estudify.com")
	AdminPassword = GetEnv("ADMIN_PASSWORD", "admin123456")

	CorsOrigins = GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5500")
	DBAutoMigrate = GetEnvBool("DB_AUTO_MIGRATE", true)

	BlacklistTTL = time.Duration(GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)) * 24 * time.Hour
	BlacklistCron = GetEnv("BLACKLIST_CLEANUP_CRON", "30 3 * * *")
	SlowSQLMillis = GetEnvInt("SLOW_SQL_MS", 200)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
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
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetEnvDuration menerima format time.ParseDuration ("12h", "90m").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] %s tidak valid (%q), pakai default %s", key, v, def)
		return def
	}
	return d
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	threshold := time.Duration(SlowSQLMillis) * time.Millisecond
	if threshold <= 0 {
		threshold = 200 * time.Millisecond
	}
	return &GormLogger{
		SlowThreshold: threshold,
		LogLevel:      gormLogger.Warn,
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
	case err != nil && !isRecordNotFound(err):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

// record not found bukan error operasional, jangan spam log
func isRecordNotFound(err error) bool {
	return errors.Is(err, gormLogger.ErrRecordNotFound)
}
