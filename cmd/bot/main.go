// Package main is the entry point for the SentryBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SentryLabs/SentryBotGo/internal/commands"
	"github.com/SentryLabs/SentryBotGo/internal/events"
	"github.com/SentryLabs/SentryBotGo/pkg/config"
	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	apperrors "github.com/SentryLabs/SentryBotGo/pkg/errors"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
	"github.com/SentryLabs/SentryBotGo/pkg/mqtt"
	"github.com/SentryLabs/SentryBotGo/pkg/notify"
	"github.com/SentryLabs/SentryBotGo/pkg/partners"
	"github.com/SentryLabs/SentryBotGo/pkg/warnstore"
	"github.com/SentryLabs/SentryBotGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNoToken) {
			fmt.Println("No bot token configured: set DISCORD_TOKEN or BOT_TOKEN")
		} else {
			fmt.Printf("Error loading configuration: %v\n", err)
		}
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting SentryBot Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errHandler := apperrors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})
	defer errHandler.Stop()

	// Open the warning ledger; the bot is useless without it
	store, err := warnstore.Init(cfg.WarnFile)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error opening warning ledger: %v", err), "Main")
		os.Exit(1)
	}

	// The warning service writes an audit line for every mutation
	warnService := moderation.Init(store)
	warnService.OnChange(func(rec moderation.ChangeRecord) {
		line := fmt.Sprintf("op=%s guild=%s user=%s moderator=%s remaining=%d",
			rec.Op, rec.GuildID, rec.UserID, rec.Moderator, rec.Remaining)
		if rec.Warning != nil {
			line += fmt.Sprintf(" id=%d reason=%q", rec.Warning.ID, rec.Warning.Reason)
		}
		if rec.Op == "clear" {
			line += fmt.Sprintf(" cleared=%d", rec.Cleared)
		}
		logger.Audit(line, "Ledger")
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database; it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			_ = db.Disconnect()
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Initialize MQTT and publish audit events to the bus
	mqttClientID := "sentrybot"
	if !cfg.IsProd() {
		mqttClientID = "sentrybot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
		cfg.Environment,
	)
	defer mqttClient.Destroy()

	warnService.OnChange(mqttClient.AuditHook())

	// Other services query the bot over the bus
	mqttClient.On("status", func(payload map[string]interface{}) (interface{}, error) {
		online := discordClient != nil && discordClient.IsReady()
		guilds := 0
		if online {
			guilds = discordClient.GuildCount()
		}
		return map[string]interface{}{
			"online":      online,
			"guilds":      guilds,
			"environment": cfg.Environment,
		}, nil
	})

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken, cfg.Prefix)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands and events
	commands.RegisterAll(discordClient)
	events.RegisterAll(discordClient)

	// The notifier must be up before the gateway opens; command handlers
	// reach it as soon as the first message arrives
	notify.Init(discordClient.Session)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		_ = discordClient.Stop()
	}()

	// The partner rotation posts through the notifier
	partners.Init().Start()
	defer partners.Get().Stop()

	logger.Success("SentryBot Go started!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down SentryBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
