// Package models contains the persisted data structures of the bot.
package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// Warning is one entry in the warning ledger. Entries are immutable once
// created; ModeratorName is a snapshot taken at issue time and never refreshed.
type Warning struct {
	ID            int       `json:"id"`
	Reason        string    `json:"reason"`
	Moderator     string    `json:"moderator"`
	ModeratorName string    `json:"moderator_name"`
	Timestamp     time.Time `json:"timestamp"`
}

// WarnBucket holds the ordered warnings of one (guild, user) pair together
// with the monotonic next-id counter. Ids are assigned from Counter and the
// counter only moves forward, so removed ids are never handed out again.
type WarnBucket struct {
	Counter int       `json:"counter"`
	Entries []Warning `json:"entries"`
}

// WarnLedger maps guildID -> userID -> bucket. Keys are Discord snowflakes
// compared byte-exact.
type WarnLedger map[string]map[string]*WarnBucket

// current on-disk shape, decoded through a plain struct so unmarshalling
// does not recurse into WarnBucket.UnmarshalJSON
type warnBucketDoc struct {
	Counter *int      `json:"counter"`
	Entries []Warning `json:"entries"`
}

// UnmarshalJSON accepts both the current shape ({"counter":n,"entries":[...]})
// and the legacy plain-list shape ([...]). Legacy buckets get their counter
// rebuilt so the next id stays above everything ever observed.
func (b *WarnBucket) UnmarshalJSON(data []byte) error {
	var legacy []Warning
	if err := json.Unmarshal(data, &legacy); err == nil {
		b.Entries = legacy
		b.Counter = nextIDFor(legacy)
		return nil
	}

	var cur warnBucketDoc
	if err := json.Unmarshal(data, &cur); err != nil {
		return err
	}

	b.Entries = cur.Entries
	if cur.Counter != nil && *cur.Counter >= nextIDFor(cur.Entries) {
		b.Counter = *cur.Counter
	} else {
		// Counter missing or stale; rebuild it
		b.Counter = nextIDFor(cur.Entries)
	}
	return nil
}

// nextIDFor derives a safe next id for buckets that lack a counter.
// Both the highest surviving id and the entry count are considered because
// legacy files assigned ids as len(entries)+1 and may contain either shape.
func nextIDFor(entries []Warning) int {
	maxID := 0
	for _, w := range entries {
		if w.ID > maxID {
			maxID = w.ID
		}
	}
	if n := len(entries); n > maxID {
		maxID = n
	}
	return maxID + 1
}

// MaxID returns the highest id currently in the bucket, 0 when empty
func (b *WarnBucket) MaxID() int {
	maxID := 0
	for _, w := range b.Entries {
		if w.ID > maxID {
			maxID = w.ID
		}
	}
	return maxID
}

// Clone returns a deep copy of the bucket
func (b *WarnBucket) Clone() *WarnBucket {
	if b == nil {
		return nil
	}
	out := &WarnBucket{Counter: b.Counter}
	if b.Entries != nil {
		out.Entries = make([]Warning, len(b.Entries))
		copy(out.Entries, b.Entries)
	}
	return out
}
