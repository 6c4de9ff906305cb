// Package utils - !userinfo command
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var userinfoCommand *discord.Command

func init() {
	userinfoCommand = discord.NewCommand(
		"userinfo",
		"Shows information about a member (yourself when no user is given)",
		"utils",
		userinfoHandler,
	).WithUsage("[user]").WithAliases("whois")
}

// userinfoHandler handles the !userinfo command
func userinfoHandler(ctx *discord.CommandContext) error {
	target := ctx.TargetUser(0)
	if target == nil {
		if ctx.Arg(0) != "" {
			return ctx.ReplyUsage(userinfoCommand)
		}
		target = ctx.User()
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: target.ID, Inline: true},
		{Name: "Bot", Value: fmt.Sprintf("%t", target.Bot), Inline: true},
	}

	if created, err := discordgo.SnowflakeTimestamp(target.ID); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Account Created",
			Value:  created.UTC().Format("2006-01-02 15:04 MST"),
			Inline: true,
		})
	}

	if member := ctx.MemberByID(target.ID); member != nil {
		if !member.JoinedAt.IsZero() {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "Joined Server",
				Value:  member.JoinedAt.UTC().Format("2006-01-02 15:04 MST"),
				Inline: true,
			})
		}
		if len(member.Roles) > 0 {
			mentions := make([]string, 0, len(member.Roles))
			for _, rid := range member.Roles {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", rid))
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  fmt.Sprintf("Roles (%d)", len(member.Roles)),
				Value: strings.Join(mentions, " "),
			})
		}
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("👤 | %s", target.Username),
		Color: 0x5865F2,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: target.AvatarURL("256"),
		},
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
