package config

import (
	"log"
	"os"
)

type Config struct {
	DiscordToken string
	ChannelID    string
	RedisURL     string
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
	return Config{
		DiscordToken: getenv("DISCORD_TOKEN", ""),
		ChannelID:    getenv("DISCORD_CHANNEL_ID", ""),
		RedisURL:     getenv("REDIS_URL", "redis://localhost:6379/0"),
	}
}
