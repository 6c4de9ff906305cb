// Package utils - !avatar command
package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var avatarCommand *discord.Command

func init() {
	avatarCommand = discord.NewCommand(
		"avatar",
		"Shows a member's avatar in full size",
		"utils",
		avatarHandler,
	).WithUsage("[user]").WithAliases("av")
}

// avatarHandler handles the !avatar command
func avatarHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		if ctx.Arg(0) != "" {
			return ctx.ReplyUsage(avatarCommand)
		}
		target = ctx.User()
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("🖼 | Avatar of %s", target.Username),
		Color: 0x5865F2,
		Image: &discordgo.MessageEmbedImage{
			URL: target.AvatarURL("1024"),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
