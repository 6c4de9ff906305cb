// Package utils provides general utility commands.
package utils

import (
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

// RegisterUtilsCommands adds every utility command to the dispatch table
func RegisterUtilsCommands(client *discord.ExtendedClient) {
	commands := []*discord.Command{
		helpCommand,
		pingCommand,
		statsCommand,
		statusCommand,
		userinfoCommand,
		serverinfoCommand,
		avatarCommand,
	}

	for _, cmd := range commands {
		client.RegisterCommand(cmd)
	}
}
