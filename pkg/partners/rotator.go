// Package partners posts partnership announcements on a per-guild rotation.
// Each configured guild gets its next partner embed whenever its interval
// elapses; guilds without a partner channel are never touched.
package partners

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/models"
	"github.com/SentryLabs/SentryBotGo/pkg/notify"
	"github.com/SentryLabs/SentryBotGo/pkg/settings"
)

const defaultIntervalMinutes = 60

// Rotator drives the partnership announcement loop
type Rotator struct {
	mu       sync.Mutex
	lastPost map[string]time.Time
	nextIdx  map[string]int
	stop     chan struct{}
	running  bool
}

var (
	rotator *Rotator
	once    sync.Once
)

// Init initializes the global rotator. The notifier must already be up;
// announcements go out through it.
func Init() *Rotator {
	once.Do(func() {
		rotator = &Rotator{
			lastPost: make(map[string]time.Time),
			nextIdx:  make(map[string]int),
			stop:     make(chan struct{}),
		}
	})
	return rotator
}

// Get returns the global rotator
func Get() *Rotator {
	return rotator
}

// Start launches the rotation loop. The tick is one minute; each guild's
// own interval decides whether it posts on a given tick.
func (r *Rotator) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	logger.System("Partner rotation started", "Partners")

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.tick(time.Now())
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the rotation loop
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	close(r.stop)
}

func (r *Rotator) tick(now time.Time) {
	for _, doc := range settings.AllWithPartners() {
		interval := time.Duration(doc.PartnerInterval) * time.Minute
		if interval <= 0 {
			interval = defaultIntervalMinutes * time.Minute
		}

		r.mu.Lock()
		last := r.lastPost[doc.GuildID]
		due := now.Sub(last) >= interval
		if due {
			r.lastPost[doc.GuildID] = now
		}
		r.mu.Unlock()

		if due {
			r.announce(doc)
		}
	}
}

// announce posts the guild's next partner and advances the rotation index
func (r *Rotator) announce(doc *models.GuildSettings) {
	r.mu.Lock()
	idx := r.nextIdx[doc.GuildID] % len(doc.Partners)
	r.nextIdx[doc.GuildID] = idx + 1
	r.mu.Unlock()

	partner := doc.Partners[idx]

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🤝 | Partner: %s", partner.Name),
		Description: partner.Message,
		Color:       0x00AE86,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if partner.InviteURL != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Invite", Value: partner.InviteURL},
		}
	}

	notify.Get().ReplyInChannel(doc.PartnerChannelID, embed)
	logger.Info(fmt.Sprintf("Announced partner %q in guild %s", partner.Name, doc.GuildID), "Partners")
}
