// Package utils - !serverinfo command
package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var serverinfoCommand = discord.NewCommand(
	"serverinfo",
	"Shows information about this server",
	"utils",
	serverinfoHandler,
).WithAliases("guildinfo")

// serverinfoHandler handles the !serverinfo command
func serverinfoHandler(ctx *discord.CommandContext) error {
	guild := ctx.Guild()
	if guild == nil {
		return ctx.Reply("❌ Could not load this server's information.")
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: guild.ID, Inline: true},
		{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
		{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
		{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
		{Name: "Emojis", Value: fmt.Sprintf("%d", len(guild.Emojis)), Inline: true},
	}

	if created, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Created",
			Value:  created.UTC().Format("2006-01-02 15:04 MST"),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🏠 | %s", guild.Name),
		Color:     0x5865F2,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	return ctx.ReplyEmbed(embed)
}
