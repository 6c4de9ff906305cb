// Package mod - !mute command
package mod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

// maxTimeout is the longest timeout Discord accepts
const maxTimeout = 28 * 24 * time.Hour

var muteCommand *discord.Command

func init() {
	muteCommand = discord.NewCommand(
		"mute",
		"Times out a member (example durations: 10m, 2h, 1h30m)",
		"mod",
		muteHandler,
	).WithUsage("<user> <duration> [reason]").WithAliases("timeout")
}

// muteHandler handles the !mute command
func muteHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(muteCommand)
	}

	duration, err := time.ParseDuration(ctx.Arg(1))
	if err != nil || duration <= 0 {
		return ctx.ReplyUsage(muteCommand)
	}
	if duration > maxTimeout {
		return ctx.Reply("❌ The maximum timeout is 28 days.")
	}

	if ctx.MemberByID(target.ID) == nil {
		return ctx.Reply("❌ That user is not a member of this server.")
	}

	if !gate(ctx, target.ID, permissions.ActionMute) {
		return nil
	}

	reason := ctx.RestFrom(2)
	if reason == "" {
		reason = "No reason given"
	}

	until := time.Now().Add(duration)
	if err := ctx.Session.GuildMemberTimeout(ctx.Message.GuildID, target.ID, &until); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to mute: %v", err))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔇 | %s has been muted", displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("**Duration:** %s\n**Reason:** %s\n**Moderator:** %s",
			duration, reason, ctx.User().Username),
		Color:     colorWarn,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
