package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quorumdao/govproposals/src/notifybot/bot"
	"github.com/quorumdao/govproposals/src/notifybot/config"
	"github.com/quorumdao/govproposals/src/shared/data"
)

func main() {
	cfg := config.Load()
	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(bot.Config{
		Token:     cfg.DiscordToken,
		ChannelID: cfg.ChannelID,
		Redis:     rdb,
	})
	if err != nil {
		log.Fatalf("notifybot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("notifybot: %v", err)
	}
	log.Printf("notifybot listening for proposal events")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	b.Stop()
}
