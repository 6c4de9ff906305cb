// Package mod - !kick command
package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

var kickCommand *discord.Command

func init() {
	kickCommand = discord.NewCommand(
		"kick",
		"Kicks a member from the server",
		"mod",
		kickHandler,
	).WithUsage("<user> [reason]")
}

// kickHandler handles the !kick command
func kickHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(kickCommand)
	}

	if ctx.MemberByID(target.ID) == nil {
		return ctx.Reply("❌ That user is not a member of this server.")
	}

	reason := ctx.RestFrom(1)
	if reason == "" {
		reason = "No reason given"
	}

	if !gate(ctx, target.ID, permissions.ActionKick) {
		return nil
	}

	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Message.GuildID, target.ID, reason); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to kick: %v", err))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("👢 | %s has been kicked", displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("**Reason:** %s\n**Moderator:** %s", reason, ctx.User().Username),
		Color:       colorDanger,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}
