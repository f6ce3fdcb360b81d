package db

import (
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はPostgresに接続して *gorm.DB を返す。
// DATABASE_URL があればそれを使い、無ければ個別の環境変数からDSNを組む
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = buildDSN()
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func buildDSN() string {
	pairs := []string{
		"host=" + getenv("POSTGRES_HOST", "localhost"),
		"port=" + getenv("POSTGRES_PORT", "5432"),
		"user=" + getenv("POSTGRES_USER", "postgres"),
		"password=" + getenv("POSTGRES_PASSWORD", "postgres"),
		"dbname=" + getenv("POSTGRES_DB", "genstore"),
		"sslmode=" + getenv("POSTGRES_SSLMODE", "disable"),
	}
	return strings.Join(pairs, " ")
}

func getenv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
