// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, utils, dev).
package commands

import (
	"github.com/SentryLabs/SentryBotGo/internal/commands/dev"
	"github.com/SentryLabs/SentryBotGo/internal/commands/mod"
	"github.com/SentryLabs/SentryBotGo/internal/commands/utils"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Moderation commands (!warn, !unwarn, !clearwarnings, !warnings, ...)
	mod.RegisterModCommands(client)

	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Owner-only commands
	dev.RegisterDevCommands(client)
}
