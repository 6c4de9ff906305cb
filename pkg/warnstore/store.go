// Package warnstore owns the durable warning ledger. The whole ledger lives
// in a single JSON document on disk; every mutation rewrites the document
// through a temp-file rename so a crash leaves either the old or the new
// state, never a torn one.
package warnstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/models"
)

// MutateFunc transforms the current bucket into its next state. It must be a
// pure function of its input: the store retries nothing, compensates nothing.
// Returning a nil bucket or one with no entries removes the bucket entirely.
type MutateFunc func(current *models.WarnBucket) (*models.WarnBucket, error)

// Store provides atomic, durable, ordered storage for warning buckets.
// Distinct buckets may mutate in parallel; writes to one bucket are totally
// ordered by its lock. Disk writes are serialized by fileMu because every
// write rewrites the single backing document.
type Store struct {
	path string

	mu     sync.Mutex // guards ledger and locks
	ledger models.WarnLedger
	locks  map[string]*sync.Mutex

	fileMu sync.Mutex
}

var (
	store     *Store
	storeOnce sync.Once
)

// Init opens the global store backed by the given file
func Init(path string) (*Store, error) {
	var err error
	storeOnce.Do(func() {
		store, err = Open(path)
	})
	return store, err
}

// Open loads the ledger document at path, creating the parent directory if
// needed. A missing file is an empty ledger; an unreadable one is an error
// the caller should treat as fatal.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		ledger: make(models.WarnLedger),
		locks:  make(map[string]*sync.Mutex),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "create ledger directory")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.System("No existing warning ledger, starting empty", "WarnStore")
			return s, nil
		}
		return nil, errors.Wrap(err, "read ledger")
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.ledger); err != nil {
			return nil, errors.Wrap(err, "parse ledger")
		}
	}

	users := 0
	for _, g := range s.ledger {
		users += len(g)
	}
	logger.System(fmt.Sprintf("Warning ledger loaded: %d guilds, %d users", len(s.ledger), users), "WarnStore")
	return s, nil
}

// bucketLock returns the mutex for one (guild, user) bucket, creating it on
// first use
func (s *Store) bucketLock(guildID, userID string) *sync.Mutex {
	key := guildID + "/" + userID

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Read returns a snapshot of one bucket; an empty bucket if none exists.
// The snapshot is a copy, callers may do whatever they want with it.
func (s *Store) Read(guildID, userID string) *models.WarnBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.ledger[guildID]; ok {
		if b, ok := g[userID]; ok {
			return b.Clone()
		}
	}
	return &models.WarnBucket{Counter: 1}
}

// ReadAll returns a deep copy of the whole ledger. Administrative tooling
// only; command paths go through Read/Mutate.
func (s *Store) ReadAll() models.WarnLedger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(models.WarnLedger, len(s.ledger))
	for gid, users := range s.ledger {
		out[gid] = make(map[string]*models.WarnBucket, len(users))
		for uid, b := range users {
			out[gid][uid] = b.Clone()
		}
	}
	return out
}

// Mutate applies f to the bucket of (guildID, userID) and persists the result.
// The bucket lock is held for the full read-transform-persist cycle. When the
// write fails the in-memory ledger keeps its previous state, so memory always
// reflects what is durable.
func (s *Store) Mutate(guildID, userID string, f MutateFunc) error {
	lock := s.bucketLock(guildID, userID)
	lock.Lock()
	defer lock.Unlock()

	current := s.Read(guildID, userID)

	next, err := f(current)
	if err != nil {
		return err
	}

	// Disk writes rewrite the whole document; serialize them so no
	// concurrent bucket mutation is lost from the snapshot.
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	snapshot := s.snapshotWith(guildID, userID, next)

	if err := s.persist(snapshot); err != nil {
		return errors.Wrap(err, "persist ledger")
	}

	// Durable; now install in memory
	s.mu.Lock()
	s.install(guildID, userID, next)
	s.mu.Unlock()

	return nil
}

// snapshotWith builds the document to persist: the live ledger with one
// bucket replaced (or removed)
func (s *Store) snapshotWith(guildID, userID string, next *models.WarnBucket) models.WarnLedger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(models.WarnLedger, len(s.ledger)+1)
	for gid, users := range s.ledger {
		cp := make(map[string]*models.WarnBucket, len(users))
		for uid, b := range users {
			cp[uid] = b
		}
		out[gid] = cp
	}

	if next == nil || len(next.Entries) == 0 {
		if users, ok := out[guildID]; ok {
			delete(users, userID)
			if len(users) == 0 {
				delete(out, guildID)
			}
		}
		return out
	}

	if _, ok := out[guildID]; !ok {
		out[guildID] = make(map[string]*models.WarnBucket, 1)
	}
	out[guildID][userID] = next
	return out
}

// install applies the new bucket state to the live ledger. Caller holds s.mu.
func (s *Store) install(guildID, userID string, next *models.WarnBucket) {
	if next == nil || len(next.Entries) == 0 {
		if users, ok := s.ledger[guildID]; ok {
			delete(users, userID)
			if len(users) == 0 {
				delete(s.ledger, guildID)
			}
		}
		return
	}

	if _, ok := s.ledger[guildID]; !ok {
		s.ledger[guildID] = make(map[string]*models.WarnBucket, 1)
	}
	s.ledger[guildID][userID] = next.Clone()
}

// persist writes the document atomically: temp file in the same directory,
// then rename over the target
func (s *Store) persist(ledger models.WarnLedger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal ledger")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".warnings-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
