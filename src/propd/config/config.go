package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MySQLDSN         string
	RedisURL         string
	JWTSecret        string
	Port             string
	SnapshotInterval int // seconds between state snapshots
	AllowOrigins     []string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	si, _ := strconv.Atoi(getenv("SNAPSHOT_INTERVAL", "60"))
	if si <= 0 {
		si = 60
	}
	return Config{
		MySQLDSN:         getenv("MYSQL_DSN", "dev:test@tcp(localhost:3306)/govproposals"),
		RedisURL:         getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:        getenv("JWT_SECRET", ""),
		Port:             getenv("PORT", "8080"),
		SnapshotInterval: si,
		AllowOrigins:     strings.Split(getenv("ALLOW_ORIGINS", "http://localhost:3000"), ","),
	}
}
