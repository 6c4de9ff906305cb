// Package mod - !unwarn command
package mod

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
	"github.com/SentryLabs/SentryBotGo/pkg/notify"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

var unwarnCommand *discord.Command

func init() {
	unwarnCommand = discord.NewCommand(
		"unwarn",
		"Removes a single warning by its id",
		"mod",
		unwarnHandler,
	).WithUsage("<user> <warning id>").WithAliases("removewarn")
}

// unwarnHandler handles the !unwarn command
func unwarnHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(unwarnCommand)
	}

	id, err := strconv.Atoi(ctx.Arg(1))
	if err != nil || id <= 0 {
		return ctx.ReplyUsage(unwarnCommand)
	}

	if !gate(ctx, target.ID, permissions.ActionUnwarn) {
		return nil
	}

	removed, remaining, err := moderation.Get().RemoveByID(ctx.Message.GuildID, target.ID, id)
	if err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return ctx.Reply(fmt.Sprintf("❌ No warning with ID %d found for **%s**.", id, displayName(target.Username, target.ID)))
		}
		return replyStorageError(ctx, "unwarn", err)
	}

	// Best effort DM
	guildName := ctx.Message.GuildID
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}
	_, _ = notify.Get().SendDirect(target.ID, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✅ | A warning was removed in %s", guildName),
		Description: fmt.Sprintf("**Reason was:** %s", removed.Reason),
		Color:       colorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	})

	issuedBy := removed.ModeratorName
	if issuedBy == "" {
		issuedBy = removed.Moderator
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("✅ | Removed warning %d from %s", removed.ID, displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("**Reason was:** %s\n**Originally issued by:** %s\nRemaining Warnings: %d",
			removed.Reason, issuedBy, remaining),
		Color:     colorSuccess,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
