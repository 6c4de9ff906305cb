// Package utils - !ping command
package utils

import (
	"fmt"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var pingCommand = discord.NewCommand(
	"ping",
	"Checks the bot latency",
	"utils",
	pingHandler,
)

// pingHandler handles the !ping command
func pingHandler(ctx *discord.CommandContext) error {
	latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
	return ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
}
