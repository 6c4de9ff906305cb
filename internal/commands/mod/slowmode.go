// Package mod - !slowmode command
package mod

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
)

// maxSlowmodeSeconds is Discord's upper bound for the channel rate limit
const maxSlowmodeSeconds = 21600

var slowmodeCommand *discord.Command

func init() {
	slowmodeCommand = discord.NewCommand(
		"slowmode",
		"Sets the slowmode of the current channel in seconds (0 disables it)",
		"mod",
		slowmodeHandler,
	).WithUsage("<seconds>")
}

// slowmodeHandler handles the !slowmode command
func slowmodeHandler(ctx *discord.CommandContext) error {
	seconds, err := strconv.Atoi(ctx.Arg(0))
	if err != nil || seconds < 0 || seconds > maxSlowmodeSeconds {
		return ctx.ReplyUsage(slowmodeCommand)
	}

	if !gate(ctx, "", permissions.ActionSlowmode) {
		return nil
	}

	_, err = ctx.Session.ChannelEditComplex(ctx.Message.ChannelID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	})
	if err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Failed to set slowmode: %v", err))
	}

	channelName := "this channel"
	if ch := ctx.Channel(); ch != nil {
		channelName = "#" + ch.Name
	}
	if seconds == 0 {
		return ctx.Reply(fmt.Sprintf("🐢 Slowmode disabled for %s.", channelName))
	}
	return ctx.Reply(fmt.Sprintf("🐢 Slowmode set to %d seconds for %s.", seconds, channelName))
}
