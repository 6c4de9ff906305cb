// Package events provides event handlers for member events
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/settings"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberAdd welcomes new members in the configured channel. Guilds
// without a welcome channel get nothing; the feature is opt-in per guild.
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 New member: %s in guild %s", m.User.Username, m.GuildID), "Member")

	doc := settings.ForGuild(m.GuildID)
	if doc == nil || doc.WelcomeChannelID == "" {
		return
	}

	guild, err := s.Guild(m.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error fetching guild: %v", err), "Member")
		return
	}

	message := doc.WelcomeMessage
	if message == "" {
		message = "Welcome to the server, {user}!"
	}
	message = strings.ReplaceAll(message, "{user}", fmt.Sprintf("<@%s>", m.User.ID))
	message = strings.ReplaceAll(message, "{server}", guild.Name)

	embed := &discordgo.MessageEmbed{
		Title:       "Welcome! 🎉",
		Description: fmt.Sprintf("%s\nWe are now **%d** members.", message, guild.MemberCount),
		Color:       0x00FF00,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("128"),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    guild.Name,
			IconURL: guild.IconURL("64"),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(doc.WelcomeChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error sending welcome message: %v", err), "Member")
	}

	// Best effort welcome DM
	channel, err := s.UserChannelCreate(m.User.ID)
	if err == nil {
		dmEmbed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Welcome to %s!", guild.Name),
			Description: "We hope you enjoy your stay. If you need help, ask the moderators.",
			Color:       0x3498DB,
			Thumbnail: &discordgo.MessageEmbedThumbnail{
				URL: guild.IconURL("256"),
			},
		}
		if _, dmErr := s.ChannelMessageSendEmbed(channel.ID, dmEmbed); dmErr != nil {
			logger.Debug("Could not send welcome DM (DMs closed)", "Member")
		}
	}
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Goodbye: %s left guild %s", m.User.Username, m.GuildID), "Member")

	doc := settings.ForGuild(m.GuildID)
	if doc == nil || doc.WelcomeChannelID == "" {
		return
	}

	guild, err := s.Guild(m.GuildID)
	if err != nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("👋 **%s** has left the server.\nWe are now **%d** members.",
			m.User.Username, guild.MemberCount),
		Color: 0xE74C3C,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("64"),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(doc.WelcomeChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error sending farewell message: %v", err), "Member")
	}
}
