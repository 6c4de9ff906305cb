// Package discord provides command types and structures.
package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandContext provides context for command execution
type CommandContext struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Client  *ExtendedClient
	Args    []string
}

// Command represents a prefix command
type Command struct {
	Name        string
	Description string
	Category    string
	Usage       string
	Aliases     []string
	IsDev       bool
	RequiresDB  bool
	Run         CommandRunFunc
}

// CommandRunFunc is the function type for command execution
type CommandRunFunc func(ctx *CommandContext) error

// NewCommand creates a new Command with required fields
func NewCommand(name, description, category string, run CommandRunFunc) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Category:    category,
		Run:         run,
	}
}

// WithUsage sets the usage line shown on argument errors
func (c *Command) WithUsage(usage string) *Command {
	c.Usage = usage
	return c
}

// WithAliases sets alternative names for the command
func (c *Command) WithAliases(aliases ...string) *Command {
	c.Aliases = aliases
	return c
}

// AsDev marks the command as a dev-only command
func (c *Command) AsDev() *Command {
	c.IsDev = true
	return c
}

// RequiresDatabase marks the command as requiring database access
func (c *Command) RequiresDatabase() *Command {
	c.RequiresDB = true
	return c
}

// Reply sends a plain message to the invoking channel
func (ctx *CommandContext) Reply(content string) error {
	_, err := ctx.Session.ChannelMessageSend(ctx.Message.ChannelID, content)
	return err
}

// ReplyEmbed sends an embed to the invoking channel
func (ctx *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, embed)
	return err
}

// ReplyUsage sends the command's usage line
func (ctx *CommandContext) ReplyUsage(cmd *Command) error {
	return ctx.Reply(fmt.Sprintf("Usage: `%s%s %s`", ctx.Client.Prefix(), cmd.Name, cmd.Usage))
}

// Arg returns argument i or an empty string
func (ctx *CommandContext) Arg(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return ctx.Args[i]
}

// RestFrom joins the arguments from index i onward; used for free-text
// reasons
func (ctx *CommandContext) RestFrom(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return strings.TrimSpace(strings.Join(ctx.Args[i:], " "))
}

// ParseUserArg resolves a member reference argument: a mention (<@id> or
// <@!id>), a raw snowflake, or empty. Returns the user id or "".
func ParseUserArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		arg = strings.TrimPrefix(arg, "!")
	}
	if arg == "" {
		return ""
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return arg
}

// ParseChannelArg resolves a channel reference argument: a mention (<#id>)
// or a raw snowflake. Returns the channel id or "".
func ParseChannelArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "<#") && strings.HasSuffix(arg, ">") {
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<#"), ">")
	}
	if arg == "" {
		return ""
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return arg
}

// TargetUser resolves argument i as a user, hitting the API when the user is
// not cached
func (ctx *CommandContext) TargetUser(i int) *discordgo.User {
	id := ParseUserArg(ctx.Arg(i))
	if id == "" {
		return nil
	}
	if member, err := ctx.Session.State.Member(ctx.Message.GuildID, id); err == nil && member.User != nil {
		return member.User
	}
	user, err := ctx.Session.User(id)
	if err != nil {
		return nil
	}
	return user
}

// TargetMember resolves argument i as a guild member; nil when the user is
// not in the guild
func (ctx *CommandContext) TargetMember(i int) *discordgo.Member {
	id := ParseUserArg(ctx.Arg(i))
	if id == "" {
		return nil
	}
	return ctx.MemberByID(id)
}

// MemberByID fetches a guild member from state, falling back to the API
func (ctx *CommandContext) MemberByID(userID string) *discordgo.Member {
	member, err := ctx.Session.State.Member(ctx.Message.GuildID, userID)
	if err == nil {
		return member
	}
	member, err = ctx.Session.GuildMember(ctx.Message.GuildID, userID)
	if err != nil {
		return nil
	}
	return member
}

// Guild returns the guild where the command was invoked
func (ctx *CommandContext) Guild() *discordgo.Guild {
	if ctx.Message.GuildID == "" {
		return nil
	}
	guild, err := ctx.Session.State.Guild(ctx.Message.GuildID)
	if err != nil {
		guild, err = ctx.Session.Guild(ctx.Message.GuildID)
		if err != nil {
			return nil
		}
	}
	return guild
}

// Channel returns the channel where the command was invoked
func (ctx *CommandContext) Channel() *discordgo.Channel {
	channel, _ := ctx.Session.State.Channel(ctx.Message.ChannelID)
	return channel
}

// User returns the user who invoked the command
func (ctx *CommandContext) User() *discordgo.User {
	return ctx.Message.Author
}

// Member returns the guild member who invoked the command
func (ctx *CommandContext) Member() *discordgo.Member {
	if ctx.Message.Member != nil {
		// MessageCreate members come without the User field populated
		if ctx.Message.Member.User == nil {
			ctx.Message.Member.User = ctx.Message.Author
		}
		return ctx.Message.Member
	}
	return ctx.MemberByID(ctx.Message.Author.ID)
}
