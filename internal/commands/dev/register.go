// Package dev provides owner-only commands for poking at the running bot.
package dev

import (
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

// RegisterDevCommands adds every dev command to the dispatch table
func RegisterDevCommands(client *discord.ExtendedClient) {
	commands := []*discord.Command{
		evalCommand,
		ledgerDumpCommand,
	}

	for _, cmd := range commands {
		client.RegisterCommand(cmd)
	}
}
