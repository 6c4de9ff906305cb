// Package mod - !ban command
package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

var banCommand *discord.Command

func init() {
	banCommand = discord.NewCommand(
		"ban",
		"Bans a user from the server",
		"mod",
		banHandler,
	).WithUsage("<user> [reason]")
}

// banHandler handles the !ban command
func banHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(banCommand)
	}

	reason := ctx.RestFrom(1)
	if reason == "" {
		reason = "No reason given"
	}

	if !gate(ctx, target.ID, permissions.ActionBan) {
		return nil
	}

	if err := ctx.Session.GuildBanCreateWithReason(ctx.Message.GuildID, target.ID, reason, 0); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to ban: %v", err))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔨 | %s has been banned", displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("**Reason:** %s\n**Moderator:** %s", reason, ctx.User().Username),
		Color:       colorDanger,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}
