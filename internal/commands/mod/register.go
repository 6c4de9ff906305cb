// Package mod registers the moderation commands.
package mod

import (
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

// RegisterModCommands adds every moderation command to the dispatch table
func RegisterModCommands(client *discord.ExtendedClient) {
	commands := []*discord.Command{
		warnCommand,
		unwarnCommand,
		clearWarningsCommand,
		warningsCommand,
		banCommand,
		kickCommand,
		muteCommand,
		unbanCommand,
		slowmodeCommand,
		configCommand,
	}

	for _, cmd := range commands {
		client.RegisterCommand(cmd)
	}
}
