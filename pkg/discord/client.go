// Package discord provides the Discord bot client and related structures.
// It wraps discordgo with additional functionality for command and event handling.
package discord

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/config"
	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/errors"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
)

// DiscordGoLogger wraps the custom logger to implement discordgo.Logger interface
// Note: discordgo.Logger is a function, not an interface
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session   *discordgo.Session
	Commands  *CommandCollection
	StartTime time.Time
	prefix    string
	mu        sync.RWMutex
	isReady   bool
}

// CommandCollection is the explicit registration table: one entry per command
// name, aliases resolved at registration time
type CommandCollection struct {
	commands map[string]*Command
	aliases  map[string]string
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Set adds or updates a command and its aliases
func (cc *CommandCollection) Set(cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		cc.aliases[alias] = cmd.Name
	}
}

// Get retrieves a command by name or alias
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cmd, ok := cc.commands[name]; ok {
		return cmd, true
	}
	if canonical, ok := cc.aliases[name]; ok {
		cmd, ok := cc.commands[canonical]
		return cmd, ok
	}
	return nil, false
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command)
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token, prefix string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token, prefix)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token, prefix string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Set intents; message content is needed for prefix commands
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	// Configure session
	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.State.TrackMembers = true
	session.LogLevel = discordgo.LogWarning

	// Every REST call gets a hard deadline; nothing is retried
	session.Client = &http.Client{Timeout: 10 * time.Second}

	c := &ExtendedClient{
		Session:  session,
		Commands: NewCommandCollection(),
		prefix:   prefix,
		isReady:  false,
	}

	return c, nil
}

// Prefix returns the command prefix
func (c *ExtendedClient) Prefix() string {
	return c.prefix
}

// RegisterCommand adds a command to the dispatch table
func (c *ExtendedClient) RegisterCommand(cmd *Command) {
	c.Commands.Set(cmd)
	logger.Debug("Command registered: "+cmd.Name, "Client")
}

// Start opens the gateway connection and installs the dispatcher
func (c *ExtendedClient) Start() error {
	// Add ready handler
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot connected as: "+r.User.Username, "Client")
	})

	// Add the single message dispatcher
	c.Session.AddHandler(c.handleMessage)

	// Set start time
	c.StartTime = time.Now()

	// Open connection
	if err := c.Session.Open(); err != nil {
		return err
	}
	return nil
}

// handleMessage is the single dispatch function: prefix check, table lookup,
// execute. Handlers run on discordgo's event goroutines; panics stay inside
// the recovery middleware.
func (c *ExtendedClient) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		// Commands are guild-only
		return
	}
	if !strings.HasPrefix(m.Content, c.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, c.prefix))
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	cmd, ok := c.Commands.Get(name)
	if !ok {
		return
	}

	ctx := &CommandContext{
		Session: s,
		Message: m,
		Client:  c,
		Args:    fields[1:],
	}

	if cmd.IsDev && m.Author.ID != config.Get().OwnerID {
		return
	}

	if cmd.RequiresDB {
		if db := database.Get(); db == nil || !db.Connected() {
			_ = ctx.Reply("⚠️ This command needs the database and it is offline right now.")
			return
		}
	}

	defer errors.RecoverMiddleware()()

	if err := cmd.Run(ctx); err != nil {
		logger.Error("Error executing command "+name+": "+err.Error(), "Client")
	}
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// BotID returns the bot's own user id once the session is ready
func (c *ExtendedClient) BotID() string {
	if c.Session == nil || c.Session.State == nil || c.Session.State.User == nil {
		return ""
	}
	return c.Session.State.User.ID
}
