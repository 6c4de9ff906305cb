// Package events provides event handlers for message events
package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/settings"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageReactions)
}

// onMessageReactions adds the configured auto-reactions to every message in
// channels that have them (showcase channels, suggestion channels, ...)
func onMessageReactions(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	emojis := settings.ReactionsFor(m.GuildID, m.ChannelID)
	if len(emojis) == 0 {
		return
	}

	for _, emoji := range emojis {
		if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
			logger.Debug(fmt.Sprintf("Could not react with %s in %s: %v", emoji, m.ChannelID, err), "Message")
		}
	}
}
