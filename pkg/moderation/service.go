// Package moderation implements the warning service on top of the warning
// ledger store: id assignment, invariant enforcement, and change records for
// the audit trail.
package moderation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SentryLabs/SentryBotGo/pkg/models"
	"github.com/SentryLabs/SentryBotGo/pkg/warnstore"
)

// Error kinds. Handlers translate these to user-facing messages; anything
// wrapping ErrStorage is shown as a generic failure with the detail kept in
// the audit log.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage failure")
)

// ChangeRecord describes one ledger mutation. Records are handed to
// registered hooks (audit log, MQTT bus) after the mutation is durable.
type ChangeRecord struct {
	Op        string // "add", "remove", "clear"
	GuildID   string
	UserID    string
	Moderator string
	Warning   *models.Warning // the entry added or removed, nil for clear
	Cleared   int             // entries dropped by a clear
	Remaining int
	At        time.Time
}

// ChangeHook receives change records. Hooks run synchronously after the
// write; they must not block for long.
type ChangeHook func(ChangeRecord)

// Service enforces the ledger invariants over the store
type Service struct {
	store *warnstore.Store

	// nextAfterClear remembers, per bucket, the counter value at the moment
	// the bucket was cleared. The on-disk document drops empty buckets, but
	// within one process lifetime numbering keeps going instead of
	// restarting at 1.
	mu             sync.Mutex
	nextAfterClear map[string]int

	hookMu sync.RWMutex
	hooks  []ChangeHook
}

var (
	service *Service
	once    sync.Once
)

// Init initializes the global warning service
func Init(store *warnstore.Store) *Service {
	once.Do(func() {
		service = NewService(store)
	})
	return service
}

// Get returns the global warning service
func Get() *Service {
	return service
}

// NewService creates a warning service over a store
func NewService(store *warnstore.Store) *Service {
	return &Service{
		store:          store,
		nextAfterClear: make(map[string]int),
	}
}

// OnChange registers a hook that observes every successful mutation
func (s *Service) OnChange(h ChangeHook) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, h)
}

func (s *Service) emit(rec ChangeRecord) {
	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	for _, h := range s.hooks {
		h(rec)
	}
}

func bucketKey(guildID, userID string) string {
	return guildID + "/" + userID
}

// Add appends a new warning and returns it together with the bucket size
// after the append. The id comes from the persisted monotonic counter, so an
// id freed by a removal is never reissued.
func (s *Service) Add(guildID, userID, reason, moderatorID, moderatorName string) (models.Warning, int, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Warning{}, 0, fmt.Errorf("%w: empty reason", ErrInvalidArgument)
	}
	if guildID == "" || userID == "" {
		return models.Warning{}, 0, fmt.Errorf("%w: missing guild or user", ErrInvalidArgument)
	}

	var added models.Warning
	var total int

	err := s.store.Mutate(guildID, userID, func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		next := cur.Clone()

		id := next.Counter
		if floor := s.clearedFloor(guildID, userID); floor > id {
			id = floor
		}
		if maxID := next.MaxID(); id <= maxID {
			// Counter fell behind the entries somehow; never reuse an id
			id = maxID + 1
		}

		added = models.Warning{
			ID:            id,
			Reason:        reason,
			Moderator:     moderatorID,
			ModeratorName: moderatorName,
			Timestamp:     time.Now().UTC().Truncate(time.Second),
		}
		next.Entries = append(next.Entries, added)
		next.Counter = id + 1
		total = len(next.Entries)
		return next, nil
	})
	if err != nil {
		return models.Warning{}, 0, storageErr(err)
	}

	s.rememberCounter(guildID, userID, added.ID+1)
	s.emit(ChangeRecord{
		Op:        "add",
		GuildID:   guildID,
		UserID:    userID,
		Moderator: moderatorID,
		Warning:   &added,
		Remaining: total,
		At:        added.Timestamp,
	})
	return added, total, nil
}

// RemoveByID deletes one warning by its id and returns the removed entry and
// the remaining count. The bucket disappears from the ledger when its last
// entry goes.
func (s *Service) RemoveByID(guildID, userID string, id int) (models.Warning, int, error) {
	if id < 1 {
		return models.Warning{}, 0, fmt.Errorf("%w: warning id must be positive", ErrInvalidArgument)
	}

	var removed models.Warning
	var remaining int

	err := s.store.Mutate(guildID, userID, func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		if len(cur.Entries) == 0 {
			return nil, fmt.Errorf("%w: user has no warnings", ErrNotFound)
		}

		next := cur.Clone()
		idx := -1
		for i, w := range next.Entries {
			if w.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: no warning with id %d", ErrNotFound, id)
		}

		removed = next.Entries[idx]
		next.Entries = append(next.Entries[:idx], next.Entries[idx+1:]...)
		remaining = len(next.Entries)

		if remaining == 0 {
			// Bucket goes away; keep the counter alive in memory so a later
			// Add keeps counting forward
			s.rememberCounter(guildID, userID, next.Counter)
		}
		return next, nil
	})
	if err != nil {
		return models.Warning{}, 0, storageErr(err)
	}

	s.emit(ChangeRecord{
		Op:        "remove",
		GuildID:   guildID,
		UserID:    userID,
		Moderator: removed.Moderator,
		Warning:   &removed,
		Remaining: remaining,
		At:        time.Now().UTC(),
	})
	return removed, remaining, nil
}

// ClearForUser drops the whole bucket and returns how many entries it had
func (s *Service) ClearForUser(guildID, userID string) (int, error) {
	cleared := 0

	err := s.store.Mutate(guildID, userID, func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		if len(cur.Entries) == 0 {
			return nil, fmt.Errorf("%w: user has no warnings", ErrNotFound)
		}
		cleared = len(cur.Entries)
		s.rememberCounter(guildID, userID, cur.Counter)
		return nil, nil
	})
	if err != nil {
		return 0, storageErr(err)
	}

	s.emit(ChangeRecord{
		Op:      "clear",
		GuildID: guildID,
		UserID:  userID,
		Cleared: cleared,
		At:      time.Now().UTC(),
	})
	return cleared, nil
}

// List returns a snapshot of the user's warnings in insertion order
func (s *Service) List(guildID, userID string) ([]models.Warning, error) {
	bucket := s.store.Read(guildID, userID)
	return bucket.Entries, nil
}

// Ledger exposes the administrative full-dump path of the store
func (s *Service) Ledger() models.WarnLedger {
	return s.store.ReadAll()
}

func (s *Service) clearedFloor(guildID, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextAfterClear[bucketKey(guildID, userID)]
}

func (s *Service) rememberCounter(guildID, userID string, next int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := bucketKey(guildID, userID)
	if next > s.nextAfterClear[key] {
		s.nextAfterClear[key] = next
	}
}

// storageErr tags unrecognized errors as storage failures while letting the
// service's own kinds pass through untouched
func storageErr(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
