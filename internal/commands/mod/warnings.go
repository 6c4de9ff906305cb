// Package mod - !warnings command
package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

// maxListedWarnings caps the embed at the most recent entries
const maxListedWarnings = 10

var warningsCommand *discord.Command

func init() {
	warningsCommand = discord.NewCommand(
		"warnings",
		"Lists the warnings of a member (yours when no user is given)",
		"mod",
		warningsHandler,
	).WithUsage("[user]").WithAliases("warns")
}

// warningsHandler handles the !warnings command
func warningsHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		if ctx.Arg(0) != "" {
			return ctx.ReplyUsage(warningsCommand)
		}
		target = ctx.User()
	}

	if !gate(ctx, target.ID, permissions.ActionListWarnings) {
		return nil
	}

	entries, err := moderation.Get().List(ctx.Message.GuildID, target.ID)
	if err != nil {
		return replyStorageError(ctx, "warnings", err)
	}

	name := displayName(target.Username, target.ID)
	if len(entries) == 0 {
		return ctx.Reply(fmt.Sprintf("**%s** has no warnings.", name))
	}

	// Show the most recent entries, oldest first
	shown := entries
	if len(shown) > maxListedWarnings {
		shown = shown[len(shown)-maxListedWarnings:]
	}

	showModerator := isModerator(ctx)

	fields := make([]*discordgo.MessageEmbedField, 0, len(shown))
	for _, w := range shown {
		value := w.Reason
		if showModerator && w.ModeratorName != "" {
			value = fmt.Sprintf("%s\n*Moderator: %s*", w.Reason, w.ModeratorName)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("ID %d • %s", w.ID, w.Timestamp.Format("2006-01-02 15:04 MST")),
			Value: value,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📋 | Warnings for %s", name),
		Color:     colorWarn,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Total Warnings %d", len(entries)),
		},
	}
	if len(entries) > maxListedWarnings {
		embed.Description = fmt.Sprintf("Showing the %d most recent warnings.", maxListedWarnings)
	}

	return ctx.ReplyEmbed(embed)
}
