// Package dev - !ledgerdump command
package dev

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
)

var ledgerDumpCommand = discord.NewCommand(
	"ledgerdump",
	"Dumps the warning ledger of this guild as JSON",
	"dev",
	ledgerDumpHandler,
).WithUsage("[guild id]").AsDev()

// ledgerDumpHandler handles the !ledgerdump command
func ledgerDumpHandler(ctx *discord.CommandContext) error {
	guildID := ctx.Arg(0)
	if guildID == "" {
		guildID = ctx.Message.GuildID
	}

	ledger := moderation.Get().Ledger()
	guild, ok := ledger[guildID]
	if !ok || len(guild) == 0 {
		return ctx.Reply(fmt.Sprintf("Guild %s has no ledger entries.", guildID))
	}

	data, err := json.MarshalIndent(guild, "", "  ")
	if err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to serialize the ledger: %v", err))
	}

	if len(data) <= 1900 {
		return ctx.Reply(fmt.Sprintf("```json\n%s\n```", data))
	}

	// Too big for a message; attach it as a file instead
	_, err = ctx.Session.ChannelFileSend(
		ctx.Message.ChannelID,
		fmt.Sprintf("ledger-%s.json", guildID),
		bytes.NewReader(data),
	)
	return err
}
