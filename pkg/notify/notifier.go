// Package notify is the thin chat-delivery layer: direct messages to users
// and confirmations in channels. Closed DMs are a fact of life, not an error.
package notify

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/SentryLabs/SentryBotGo/pkg/logger"
)

// Notifier delivers messages through the Discord session
type Notifier struct {
	session *discordgo.Session
}

var (
	notifier *Notifier
	once     sync.Once
)

// Init initializes the global notifier
func Init(session *discordgo.Session) *Notifier {
	once.Do(func() {
		notifier = NewNotifier(session)
	})
	return notifier
}

// Get returns the global notifier
func Get() *Notifier {
	return notifier
}

// NewNotifier creates a notifier over a session
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// SendDirect DMs an embed to a user. A recipient with closed DMs is treated
// as success-without-delivery (delivered=false, nil error); anything else is
// a transport error.
func (n *Notifier) SendDirect(userID string, embed *discordgo.MessageEmbed) (bool, error) {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		if isDMClosed(err) {
			return false, nil
		}
		return false, err
	}

	if _, err := n.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		if isDMClosed(err) {
			logger.Debug(fmt.Sprintf("User %s has DMs closed", userID), "Notifier")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReplyInChannel posts an embed in a channel. Failures are logged and never
// retried; the ledger is the source of truth, not the confirmation message.
func (n *Notifier) ReplyInChannel(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := n.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Failed to reply in channel %s: %v", channelID, err), "Notifier")
	}
}

// isDMClosed reports whether an error is Discord telling us the recipient
// does not accept DMs
func isDMClosed(err error) bool {
	restErr, ok := err.(*discordgo.RESTError)
	if !ok || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser
}
