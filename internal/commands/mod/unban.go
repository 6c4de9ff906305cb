// Package mod - !unban command
package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

var unbanCommand *discord.Command

func init() {
	unbanCommand = discord.NewCommand(
		"unban",
		"Removes a ban by user id",
		"mod",
		unbanHandler,
	).WithUsage("<user id>")
}

// unbanHandler handles the !unban command
func unbanHandler(ctx *discord.CommandContext) error {
	userID := discord.ParseUserArg(ctx.Arg(0))
	if userID == "" {
		return ctx.ReplyUsage(unbanCommand)
	}

	if !gate(ctx, userID, permissions.ActionUnban) {
		return nil
	}

	if err := ctx.Session.GuildBanDelete(ctx.Message.GuildID, userID); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to unban: %v", err))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔓 | <@%s> has been unbanned", userID),
		Description: fmt.Sprintf("**Moderator:** %s", ctx.User().Username),
		Color:       colorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}
