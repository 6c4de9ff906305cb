// Package mod - !config command
package mod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/models"
	"github.com/SentryLabs/SentryBotGo/pkg/permissions"
	"github.com/SentryLabs/SentryBotGo/pkg/settings"
)

// defaultPartnerInterval mirrors the rotation loop's fallback
const defaultPartnerInterval = 60

var configCommand *discord.Command

func init() {
	configCommand = discord.NewCommand(
		"config",
		"Configures the welcome channel, auto-reactions, and partner rotation",
		"mod",
		configHandler,
	).WithUsage("show | welcome <#channel> [message] | welcome off | reactions <#channel> <emoji...|off> | partner <channel|interval|add|off> ...").
		RequiresDatabase()
}

// configHandler handles the !config command
func configHandler(ctx *discord.CommandContext) error {
	guild := ctx.Guild()
	if guild == nil {
		return ctx.Reply("❌ This command only works inside a server.")
	}

	perms := permissions.MemberPermissions(guild, ctx.Member())
	if guild.OwnerID != ctx.User().ID &&
		perms&discordgo.PermissionAdministrator == 0 &&
		perms&discordgo.PermissionManageServer == 0 {
		return ctx.Reply("❌ You need the Manage Server permission to change the bot configuration.")
	}

	doc := settings.ForGuild(guild.ID)
	if doc == nil {
		doc = &models.GuildSettings{GuildID: guild.ID}
	}

	switch ctx.Arg(0) {
	case "show":
		return configShow(ctx, doc)
	case "welcome":
		return configWelcome(ctx, doc)
	case "reactions":
		return configReactions(ctx, doc)
	case "partner":
		return configPartner(ctx, doc)
	default:
		return ctx.ReplyUsage(configCommand)
	}
}

func configShow(ctx *discord.CommandContext, doc *models.GuildSettings) error {
	welcome := "off"
	if doc.WelcomeChannelID != "" {
		welcome = fmt.Sprintf("<#%s>", doc.WelcomeChannelID)
	}

	reactions := "none"
	if len(doc.ReactionChannels) > 0 {
		parts := make([]string, 0, len(doc.ReactionChannels))
		for channelID, emojis := range doc.ReactionChannels {
			parts = append(parts, fmt.Sprintf("<#%s>: %s", channelID, strings.Join(emojis, " ")))
		}
		reactions = strings.Join(parts, "\n")
	}

	partner := "off"
	if doc.PartnerChannelID != "" {
		interval := doc.PartnerInterval
		if interval <= 0 {
			interval = defaultPartnerInterval
		}
		partner = fmt.Sprintf("<#%s>, every %d minutes, %d partners",
			doc.PartnerChannelID, interval, len(doc.Partners))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "⚙️ | Server configuration",
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Welcome channel", Value: welcome},
			{Name: "Auto-reactions", Value: reactions},
			{Name: "Partner rotation", Value: partner},
		},
	})
}

func configWelcome(ctx *discord.CommandContext, doc *models.GuildSettings) error {
	if ctx.Arg(1) == "off" {
		doc.WelcomeChannelID = ""
		doc.WelcomeMessage = ""
		return saveConfig(ctx, doc, "Welcome messages disabled.")
	}

	channelID := discord.ParseChannelArg(ctx.Arg(1))
	if channelID == "" {
		return ctx.ReplyUsage(configCommand)
	}

	doc.WelcomeChannelID = channelID
	if msg := ctx.RestFrom(2); msg != "" {
		// {user} and {server} expand when the message is sent
		doc.WelcomeMessage = msg
	}
	return saveConfig(ctx, doc, fmt.Sprintf("Welcome messages go to <#%s> now.", channelID))
}

func configReactions(ctx *discord.CommandContext, doc *models.GuildSettings) error {
	channelID := discord.ParseChannelArg(ctx.Arg(1))
	if channelID == "" {
		return ctx.ReplyUsage(configCommand)
	}

	if ctx.Arg(2) == "off" {
		delete(doc.ReactionChannels, channelID)
		return saveConfig(ctx, doc, fmt.Sprintf("Auto-reactions removed from <#%s>.", channelID))
	}

	emojis := ctx.Args[2:]
	if len(emojis) == 0 {
		return ctx.ReplyUsage(configCommand)
	}

	if doc.ReactionChannels == nil {
		doc.ReactionChannels = make(map[string][]string)
	}
	doc.ReactionChannels[channelID] = emojis
	return saveConfig(ctx, doc, fmt.Sprintf("Every message in <#%s> now gets: %s", channelID, strings.Join(emojis, " ")))
}

func configPartner(ctx *discord.CommandContext, doc *models.GuildSettings) error {
	switch ctx.Arg(1) {
	case "channel":
		channelID := discord.ParseChannelArg(ctx.Arg(2))
		if channelID == "" {
			return ctx.ReplyUsage(configCommand)
		}
		doc.PartnerChannelID = channelID
		return saveConfig(ctx, doc, fmt.Sprintf("Partner announcements go to <#%s> now.", channelID))

	case "interval":
		minutes, err := strconv.Atoi(ctx.Arg(2))
		if err != nil || minutes < 1 {
			return ctx.ReplyUsage(configCommand)
		}
		doc.PartnerInterval = minutes
		return saveConfig(ctx, doc, fmt.Sprintf("Partner announcements rotate every %d minutes.", minutes))

	case "add":
		// name | message | optional invite
		parts := strings.SplitN(ctx.RestFrom(2), "|", 3)
		if len(parts) < 2 {
			return ctx.Reply("Usage: `" + ctx.Client.Prefix() + "config partner add <name> | <message> | [invite url]`")
		}
		entry := models.PartnerEntry{
			Name:    strings.TrimSpace(parts[0]),
			Message: strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			entry.InviteURL = strings.TrimSpace(parts[2])
		}
		if entry.Name == "" || entry.Message == "" {
			return ctx.Reply("Usage: `" + ctx.Client.Prefix() + "config partner add <name> | <message> | [invite url]`")
		}
		doc.Partners = append(doc.Partners, entry)
		return saveConfig(ctx, doc, fmt.Sprintf("Added partner **%s** (%d in rotation).", entry.Name, len(doc.Partners)))

	case "off":
		doc.PartnerChannelID = ""
		doc.Partners = nil
		return saveConfig(ctx, doc, "Partner rotation disabled.")

	default:
		return ctx.ReplyUsage(configCommand)
	}
}

func saveConfig(ctx *discord.CommandContext, doc *models.GuildSettings, confirmation string) error {
	if err := settings.Save(doc); err != nil {
		return ctx.Reply("❌ Could not save the configuration. Please try again later.")
	}
	return ctx.Reply("✅ " + confirmation)
}
