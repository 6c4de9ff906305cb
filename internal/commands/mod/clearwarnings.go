// Package mod - !clearwarnings command
package mod

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
	"github.com/SentryLabs/SentryBotGo/pkg/notify"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

var clearWarningsCommand *discord.Command

func init() {
	clearWarningsCommand = discord.NewCommand(
		"clearwarnings",
		"Removes every warning a member has in this server",
		"mod",
		clearWarningsHandler,
	).WithUsage("<user>").WithAliases("clearwarns")
}

// clearWarningsHandler handles the !clearwarnings command
func clearWarningsHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(clearWarningsCommand)
	}

	if !gate(ctx, target.ID, permissions.ActionClearWarnings) {
		return nil
	}

	cleared, err := moderation.Get().ClearForUser(ctx.Message.GuildID, target.ID)
	if err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return ctx.Reply(fmt.Sprintf("**%s** has no warnings to clear.", displayName(target.Username, target.ID)))
		}
		return replyStorageError(ctx, "clearwarnings", err)
	}

	// Best effort DM
	guildName := ctx.Message.GuildID
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}
	_, _ = notify.Get().SendDirect(target.ID, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧹 | Your warnings were cleared in %s", guildName),
		Description: fmt.Sprintf("Cleared Warnings: %d", cleared),
		Color:       colorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	})

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧹 | Warnings cleared for %s", displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("Cleared Warnings: %d", cleared),
		Color:       colorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}
