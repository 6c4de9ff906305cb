// Package utils - !stats command
package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/config"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var statsCommand = discord.NewCommand(
	"stats",
	"Shows bot statistics",
	"utils",
	statsHandler,
)

// statsHandler handles the !stats command
func statsHandler(ctx *discord.CommandContext) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	numGoroutines := runtime.NumGoroutine()
	numCPU := runtime.NumCPU()

	goVersion := strings.TrimPrefix(runtime.Version(), "go")

	guildCount := ctx.Client.GuildCount()
	memberCount := 0
	for _, guild := range ctx.Session.State.Guilds {
		memberCount += guild.MemberCount
	}

	uptime := time.Since(ctx.Client.StartTime)

	embed := &discordgo.MessageEmbed{
		Title: "📊 Bot Statistics",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🤖 Bot Version",
				Value:  config.Version,
				Inline: true,
			},
			{
				Name:   "🐹 Go Version",
				Value:  goVersion,
				Inline: true,
			},
			{
				Name:   "📚 DiscordGo Version",
				Value:  discordgo.VERSION,
				Inline: true,
			},
			{
				Name:   "🖥 RAM Usage",
				Value:  fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
				Inline: true,
			},
			{
				Name:   "⚙️ CPU Usage",
				Value:  fmt.Sprintf("%d Goroutines / %d CPUs", numGoroutines, numCPU),
				Inline: true,
			},
			{
				Name:   "⏱ Uptime",
				Value:  formatDuration(uptime),
				Inline: true,
			},
			{
				Name:   "🏠 Guilds",
				Value:  fmt.Sprintf("%d", guildCount),
				Inline: true,
			},
			{
				Name:   "👥 Members",
				Value:  fmt.Sprintf("%d", memberCount),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "💫 - Developed by SentryLabs",
			IconURL: ctx.Client.Session.State.User.AvatarURL(""),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}

// formatDuration formats a time.Duration into a human-readable string
func formatDuration(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d seconds", seconds))
	}
	if len(parts) == 0 {
		return "just started"
	}

	return strings.Join(parts, ", ")
}
