// Package settings exposes the per-guild feature configuration stored in
// MongoDB: welcome channel, auto-reaction channels, and partner rotation.
package settings

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/models"
)

// ErrNotInitialized is returned before InitGlobalDataManagers has run
var ErrNotInitialized = errors.New("settings data manager not initialized")

func manager() (*database.DataManager[models.GuildSettings], error) {
	if database.GlobalSettingsDM == nil {
		return nil, ErrNotInitialized
	}
	return database.GlobalSettingsDM, nil
}

// ForGuild returns the settings document of a guild, nil when the guild has
// none (or the database is unreachable; passive features simply stay off).
func ForGuild(guildID string) *models.GuildSettings {
	dm, err := manager()
	if err != nil {
		return nil
	}

	doc, err := dm.Get(bson.M{"guildId": guildID})
	if err != nil {
		logger.Debug(fmt.Sprintf("Settings lookup failed for guild %s: %v", guildID, err), "Settings")
		return nil
	}
	return doc
}

// AllWithPartners returns every guild that has a partner rotation configured
func AllWithPartners() []*models.GuildSettings {
	dm, err := manager()
	if err != nil {
		return nil
	}

	docs, err := dm.GetAll(bson.M{"partnerChannelId": bson.M{"$ne": ""}})
	if err != nil {
		logger.Debug(fmt.Sprintf("Partner settings lookup failed: %v", err), "Settings")
		return nil
	}

	out := make([]*models.GuildSettings, 0, len(docs))
	for _, doc := range docs {
		if doc != nil && len(doc.Partners) > 0 {
			out = append(out, doc)
		}
	}
	return out
}

// Save upserts a guild's settings document
func Save(doc *models.GuildSettings) error {
	dm, err := manager()
	if err != nil {
		return err
	}

	_, err = dm.Set(bson.M{"guildId": doc.GuildID}, doc)
	return err
}

// ReactionsFor returns the emojis configured for a channel, nil when the
// channel has no auto-reactions
func ReactionsFor(guildID, channelID string) []string {
	doc := ForGuild(guildID)
	if doc == nil || doc.ReactionChannels == nil {
		return nil
	}
	return doc.ReactionChannels[channelID]
}
