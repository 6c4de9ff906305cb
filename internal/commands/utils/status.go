// Package utils - !status command
package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/mqtt"
)

var statusCommand = discord.NewCommand(
	"status",
	"Shows the status of the bot services",
	"utils",
	statusHandler,
)

// statusHandler handles the !status command
func statusHandler(ctx *discord.CommandContext) error {
	dbStatus := "🔴 | Offline"
	if db := database.Get(); db != nil {
		var online bool
		dbStatus, online = db.GetStatus()
		if online {
			if latency, err := db.Ping(); err == nil {
				dbStatus = fmt.Sprintf("%s (%dms)", dbStatus, latency.Milliseconds())
			}
		}
	}

	mqttStatus := "🔴 | Offline"
	if mc := mqtt.Get(); mc != nil && mc.IsConnected() {
		mqttStatus = "🟢 | Online"
	}

	gateway := "🔴 | Disconnected"
	if ctx.Client.IsReady() {
		gateway = fmt.Sprintf("🟢 | Connected (%dms)", ctx.Client.Session.HeartbeatLatency().Milliseconds())
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "🩺 Service Status",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Gateway", Value: gateway, Inline: true},
			{Name: "Database", Value: dbStatus, Inline: true},
			{Name: "MQTT", Value: mqttStatus, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
