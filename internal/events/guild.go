// Package events provides event handlers for guild events
package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildCreate)
	client.Session.AddHandler(onGuildDelete)
}

// onGuildCreate is called when the bot joins a guild (or one becomes
// available after an outage)
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}
	logger.Info(fmt.Sprintf("🏠 Guild available: %s (%s) with %d members", g.Name, g.ID, g.MemberCount), "Guild")
}

// onGuildDelete is called when the bot is removed from a guild
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		// Outage, not a removal
		return
	}
	logger.Warn(fmt.Sprintf("🏚 Removed from guild: %s", g.ID), "Guild")
}
