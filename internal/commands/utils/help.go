// Package utils - !help command
package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
)

var helpCommand = discord.NewCommand(
	"help",
	"Shows the command list",
	"utils",
	helpHandler,
)

// helpHandler handles the !help command. The listing is built from the
// dispatch table, so it never drifts from what is actually registered.
func helpHandler(ctx *discord.CommandContext) error {
	prefix := ctx.Client.Prefix()

	byCategory := make(map[string][]*discord.Command)
	for _, cmd := range ctx.Client.Commands.All() {
		if cmd.IsDev {
			continue
		}
		byCategory[cmd.Category] = append(byCategory[cmd.Category], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	fields := make([]*discordgo.MessageEmbedField, 0, len(categories))
	for _, cat := range categories {
		cmds := byCategory[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		var sb strings.Builder
		for _, cmd := range cmds {
			line := fmt.Sprintf("• `%s%s", prefix, cmd.Name)
			if cmd.Usage != "" {
				line += " " + cmd.Usage
			}
			line += "` - " + cmd.Description + "\n"
			sb.WriteString(line)
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  strings.Title(cat),
			Value: sb.String(),
		})
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "📖 SentryBot Go Help",
		Color:     0x5865F2,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
