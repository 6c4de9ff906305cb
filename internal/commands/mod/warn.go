// Package mod - !warn command
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

var warnCommand *discord.Command

func init() {
	warnCommand = discord.NewCommand(
		"warn",
		"Warns a member and records it in the warning ledger",
		"mod",
		warnHandler,
	).WithUsage("<user> <reason>")
}

// warnHandler handles the !warn command
func warnHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		return ctx.ReplyUsage(warnCommand)
	}

	reason := ctx.RestFrom(1)
	if reason == "" {
		return ctx.ReplyUsage(warnCommand)
	}

	if ctx.MemberByID(target.ID) == nil {
		return ctx.Reply("❌ That user is not a member of this server.")
	}

	if !gate(ctx, target.ID, permissions.ActionWarn) {
		return nil
	}

	actor := ctx.User()
	warning, total, err := moderation.Get().Add(ctx.Message.GuildID, target.ID, reason, actor.ID, actor.Username)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidArgument) {
			return ctx.ReplyUsage(warnCommand)
		}
		return replyStorageError(ctx, "warn", err)
	}

	// Best effort DM; a closed inbox never fails the command
	guildName := ctx.Message.GuildID
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}
	delivered, dmErr := notify.Get().SendDirect(target.ID, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚠️ | You have been warned in %s", guildName),
		Description: fmt.Sprintf("**Reason:** %s", warning.Reason),
		Color:       colorWarn,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Warning ID", Value: fmt.Sprintf("%d", warning.ID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚠️ | %s has been warned", displayName(target.Username, target.ID)),
		Description: fmt.Sprintf("**Reason:** %s\n**Moderator:** %s", warning.Reason, actor.Username),
		Color:       colorWarn,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Warning ID", Value: fmt.Sprintf("%d", warning.ID), Inline: true},
			{Name: "Total Warnings", Value: fmt.Sprintf("%d", total), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if dmErr != nil || !delivered {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Could not DM the user."}
	}

	return ctx.ReplyEmbed(embed)
}
