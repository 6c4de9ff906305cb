// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/warnings", warningsSummaryHandler)
		api.GET("/logs/live", liveLogsHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "SentryBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// warningsSummaryHandler returns aggregate warning counts per guild.
// Only counts leave the process here, never reasons or moderator IDs.
func warningsSummaryHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Ledger unavailable",
		})
		return
	}

	ledger := svc.Ledger()

	guilds := make(map[string]gin.H, len(ledger))
	totalWarnings := 0
	for guildID, users := range ledger {
		count := 0
		for _, bucket := range users {
			count += len(bucket.Entries)
		}
		guilds[guildID] = gin.H{
			"users":    len(users),
			"warnings": count,
		}
		totalWarnings += count
	}

	c.JSON(http.StatusOK, gin.H{
		"guilds":        guilds,
		"totalWarnings": totalWarnings,
	})
}
