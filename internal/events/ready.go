// Package events provides event handlers for the bot
package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(makeOnReady(client))
}

// makeOnReady builds the handler that runs when the gateway reports ready
func makeOnReady(client *discord.ExtendedClient) func(*discordgo.Session, *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Success(fmt.Sprintf("✅ Bot connected: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
		logger.Info(fmt.Sprintf("📊 Connected to %d servers", len(r.Guilds)), "Ready")

		status := fmt.Sprintf("🛡️ Moderating with %shelp", client.Prefix())
		if err := s.UpdateGameStatus(0, status); err != nil {
			logger.Error(fmt.Sprintf("Error setting status: %v", err), "Ready")
			return
		}

		logger.Debug("Bot status set", "Ready")
	}
}
