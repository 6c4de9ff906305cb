// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, member, message).
package events

import (
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Member events (welcome/farewell)
	RegisterMemberEvents(client)

	// Message events (auto-reactions)
	RegisterMessageEvents(client)

	logger.Success("✅ All events registered", "Events")
}
