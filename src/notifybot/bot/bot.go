package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/quorumdao/govproposals/src/shared/data"
)

type Config struct {
	Token     string
	ChannelID string
	Redis     *redis.Client
}

// Bot relays proposal store change notifications from the redis event stream
// into a Discord channel.
type Bot struct {
	session   *discordgo.Session
	rdb       *redis.Client
	channelID string
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func New(cfg Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		session:   dg,
		rdb:       cfg.Redis,
		channelID: cfg.ChannelID,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	b.wg.Add(1)
	go b.listenForEvents()
	return nil
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	_ = b.session.Close()
}

type streamEvent struct {
	Type        string
	ID          uint64
	Author      string
	Title       string
	Deadline    int64
	DetailsHash string
	Voter       string
	Choice      string
}

func parseEvent(values map[string]interface{}) streamEvent {
	var ev streamEvent
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}
	ev.Type = str("type")
	ev.Author = str("author")
	ev.Title = str("title")
	ev.DetailsHash = str("details_hash")
	ev.Voter = str("voter")
	ev.Choice = str("choice")
	if id, err := strconv.ParseUint(str("id"), 10, 64); err == nil {
		ev.ID = id
	}
	if dl, err := strconv.ParseInt(str("deadline"), 10, 64); err == nil {
		ev.Deadline = dl
	}
	return ev
}

func (b *Bot) listenForEvents() {
	defer b.wg.Done()
	lastID := "$"

	for {
		select {
		case <-b.ctx.Done():
			return
		default:
			streams, err := b.rdb.XRead(b.ctx, &redis.XReadArgs{
				Streams: []string{data.EventStream(), lastID},
				Count:   10,
				Block:   5 * time.Second,
			}).Result()
			if err != nil {
				if err != redis.Nil && b.ctx.Err() == nil {
					log.Printf("Error reading stream: %v", err)
				}
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					lastID = msg.ID
					if err := b.post(parseEvent(msg.Values)); err != nil {
						log.Printf("Failed to post to Discord: %v", err)
					}
				}
			}
		}
	}
}

func (b *Bot) post(ev streamEvent) error {
	var embed *discordgo.MessageEmbed
	switch ev.Type {
	case "proposal_created":
		embed = &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("New Proposal #%d: %s", ev.ID, ev.Title),
			Description: fmt.Sprintf("Proposed by %s", ev.Author),
			Color:       0x00ff00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Voting Deadline", Value: time.Unix(ev.Deadline, 0).UTC().Format(time.RFC1123)},
				{Name: "Details", Value: ev.DetailsHash},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
	case "vote_cast":
		embed = &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Vote on Proposal #%d", ev.ID),
			Description: fmt.Sprintf("%s voted %s", ev.Voter, ev.Choice),
			Color:       0x3498db,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
	default:
		return nil
	}

	_, err := b.session.ChannelMessageSendEmbed(b.channelID, embed)
	return err
}
