package notify

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestInitBeforeGatewayOpen(t *testing.T) {
	// The notifier is wired up before the gateway connects, so the first
	// command dispatched after the socket opens can already reach it.
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n := Init(session)
	if n == nil {
		t.Fatal("Init() returned nil")
	}
	if Get() != n {
		t.Error("Get() does not return the initialized notifier")
	}

	// Init is once-only; a second call keeps the original
	other, err := discordgo.New("Bot other-token")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if again := Init(other); again != n {
		t.Error("Init() replaced the notifier")
	}
}

func TestIsDMClosed(t *testing.T) {
	closed := &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeCannotSendMessagesToThisUser},
	}
	if !isDMClosed(closed) {
		t.Error("isDMClosed() = false for cannot-send error")
	}

	other := &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel},
	}
	if isDMClosed(other) {
		t.Error("isDMClosed() = true for unrelated error")
	}

	if isDMClosed(discordgo.ErrJSONUnmarshal) {
		t.Error("isDMClosed() = true for a non-REST error")
	}
}
