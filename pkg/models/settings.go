package models

// PartnerEntry is one server partnership announced on rotation
type PartnerEntry struct {
	Name      string `bson:"name" json:"name"`
	Message   string `bson:"message" json:"message"`
	InviteURL string `bson:"inviteUrl" json:"inviteUrl"`
}

// GuildSettings holds the per-guild feature configuration stored in the
// "guild_settings" collection.
type GuildSettings struct {
	GuildID string `bson:"guildId" json:"guildId"`

	// Welcome
	WelcomeChannelID string `bson:"welcomeChannelId" json:"welcomeChannelId"`
	WelcomeMessage   string `bson:"welcomeMessage" json:"welcomeMessage"`

	// Auto reactions: channelID -> emojis added to every message there
	ReactionChannels map[string][]string `bson:"reactionChannels" json:"reactionChannels"`

	// Partnership announcements
	PartnerChannelID string         `bson:"partnerChannelId" json:"partnerChannelId"`
	PartnerInterval  int            `bson:"partnerIntervalMinutes" json:"partnerIntervalMinutes"`
	Partners         []PartnerEntry `bson:"partners" json:"partners"`
}
