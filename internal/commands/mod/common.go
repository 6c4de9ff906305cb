// Package mod provides the moderation command surface: the warning ledger
// commands plus the classic ban/kick/mute family. Each command lives in its
// own file.
package mod

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

const (
	colorWarn    = 0xFFCC00
	colorDanger  = 0xE74C3C
	colorSuccess = 0x2ECC71
)

// gate runs the permission gate for a command invocation. When the action is
// denied it replies with the denial message and reports false; the handler
// just returns.
func gate(ctx *discord.CommandContext, targetID string, action permissions.Action) bool {
	var targetMember *discordgo.Member
	if targetID != "" {
		targetMember = ctx.MemberByID(targetID)
	}

	check := permissions.BuildCheck(
		ctx.Guild(),
		ctx.Member(),
		targetMember,
		targetID,
		ctx.Client.BotID(),
		action,
	)

	res := permissions.Evaluate(check)
	if !res.Allowed {
		_ = ctx.Reply(res.Message)
		return false
	}
	return true
}

// isModerator reports whether the invoker carries moderation permissions;
// used to decide how much of the ledger a listing shows.
func isModerator(ctx *discord.CommandContext) bool {
	return permissions.IsModerator(ctx.Guild(), ctx.Member())
}

// replyStorageError is the generic failure message for ledger write errors.
// The user never sees the raw error; the detail goes to the audit log with
// the command and actor attached.
func replyStorageError(ctx *discord.CommandContext, command string, err error) error {
	logger.Audit(fmt.Sprintf("command=%s actor=%s error=%v", command, ctx.User().ID, err), "Ledger")
	return ctx.Reply("❌ Something went wrong while updating the warning ledger. Please try again later.")
}

// displayName prefers the username and falls back to the raw id
func displayName(username, id string) string {
	if username != "" {
		return username
	}
	return fmt.Sprintf("<@%s>", id)
}
