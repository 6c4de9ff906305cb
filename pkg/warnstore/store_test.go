package warnstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SentryLabs/SentryBotGo/pkg/models"
)

func testWarning(id int, reason string) models.Warning {
	return models.Warning{
		ID:        id,
		Reason:    reason,
		Moderator: "mod-1",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func appendEntry(w models.Warning) MutateFunc {
	return func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		next := cur.Clone()
		next.Entries = append(next.Entries, w)
		if w.ID >= next.Counter {
			next.Counter = w.ID + 1
		}
		return next, nil
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	bucket := s.Read("g1", "u1")
	if bucket.Counter != 1 {
		t.Errorf("empty bucket counter = %d, want 1", bucket.Counter)
	}
	if len(bucket.Entries) != 0 {
		t.Errorf("empty bucket has %d entries", len(bucket.Entries))
	}
}

func TestMutateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if err := s.Mutate("g1", "u1", appendEntry(testWarning(2, "more spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// A fresh store over the same file must see the same state
	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}

	bucket := reloaded.Read("g1", "u1")
	if bucket.Counter != 3 {
		t.Errorf("reloaded counter = %d, want 3", bucket.Counter)
	}
	if len(bucket.Entries) != 2 {
		t.Fatalf("reloaded entries = %d, want 2", len(bucket.Entries))
	}
	if bucket.Entries[0].ID != 1 || bucket.Entries[1].ID != 2 {
		t.Errorf("reloaded ids = %d, %d, want 1, 2", bucket.Entries[0].ID, bucket.Entries[1].ID)
	}
	if bucket.Entries[0].Reason != "spam" {
		t.Errorf("reloaded reason = %q, want %q", bucket.Entries[0].Reason, "spam")
	}
}

func TestLegacyListShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	legacy := `{"g1":{"u1":[{"id":1,"reason":"a","moderator":"m","moderator_name":"","timestamp":"2026-01-01T00:00:00Z"},{"id":2,"reason":"b","moderator":"m","moderator_name":"","timestamp":"2026-01-02T00:00:00Z"}]}}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	bucket := s.Read("g1", "u1")
	if len(bucket.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(bucket.Entries))
	}
	if bucket.Counter != 3 {
		t.Errorf("migrated counter = %d, want 3", bucket.Counter)
	}
}

func TestEmptyBucketRemovedFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// Dropping the last entry removes the bucket entirely
	err = s.Mutate("g1", "u1", func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "g1") {
		t.Errorf("document still contains the emptied guild: %s", data)
	}

	bucket := s.Read("g1", "u1")
	if bucket.Counter != 1 || len(bucket.Entries) != 0 {
		t.Errorf("in-memory bucket not reset: counter=%d entries=%d", bucket.Counter, len(bucket.Entries))
	}
}

func TestMutateErrorLeavesStateUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	wantErr := os.ErrInvalid
	err = s.Mutate("g1", "u1", func(cur *models.WarnBucket) (*models.WarnBucket, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("Mutate() error = %v, want %v", err, wantErr)
	}

	bucket := s.Read("g1", "u1")
	if len(bucket.Entries) != 1 || bucket.Counter != 2 {
		t.Errorf("state changed after failed mutate: counter=%d entries=%d", bucket.Counter, len(bucket.Entries))
	}
}

func TestPersistFailureKeepsPreviousState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// A non-empty directory at the document path makes the rename step
	// fail, exercising the write-failure branch of Mutate.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Join(path, "block"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	err = s.Mutate("g1", "u1", appendEntry(testWarning(2, "again")))
	if err == nil {
		t.Fatal("Mutate() succeeded with an unwritable document path")
	}

	bucket := s.Read("g1", "u1")
	if len(bucket.Entries) != 1 || bucket.Entries[0].ID != 1 {
		t.Errorf("memory changed after failed persist: %+v", bucket.Entries)
	}
}

func TestStaleTempFileDoesNotShadowLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// A crash between writing the temp file and the rename leaves the
	// temp file behind; the committed document must still win on reload.
	torn := []byte(`{"g1":{"u1":{"counter":99,"entries":[{"id":98,"reason":"torn","moderator":"m","moderator_name":"","timestamp":"2026-03-01T12:00:00Z"}]}}}`)
	if err := os.WriteFile(filepath.Join(dir, ".warnings-crash.tmp"), torn, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after crash error = %v", err)
	}
	bucket := reopened.Read("g1", "u1")
	if len(bucket.Entries) != 1 || bucket.Entries[0].ID != 1 {
		t.Errorf("reloaded bucket = %+v, want the committed entry", bucket.Entries)
	}
	if bucket.Counter != 2 {
		t.Errorf("reloaded counter = %d, want 2", bucket.Counter)
	}
}

func TestStaleTempFileWithNoDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warnings.json")

	torn := []byte(`{"g1":{"u1":{"counter":5,"entries":[{"id":4,"reason":"torn","moderator":"m","moderator_name":"","timestamp":"2026-03-01T12:00:00Z"}]}}}`)
	if err := os.WriteFile(filepath.Join(dir, ".warnings-crash.tmp"), torn, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	bucket := s.Read("g1", "u1")
	if len(bucket.Entries) != 0 {
		t.Errorf("uncommitted temp file leaked into the ledger: %+v", bucket.Entries)
	}
}

func TestMutateSeesOwnWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := s.Mutate("g1", "u1", appendEntry(testWarning(i, "r"))); err != nil {
			t.Fatalf("Mutate(%d) error = %v", i, err)
		}
	}

	bucket := s.Read("g1", "u1")
	if len(bucket.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(bucket.Entries))
	}
}

func TestConcurrentDistinctBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	const perUser = 10
	users := []string{"u1", "u2", "u3"}

	var wg sync.WaitGroup
	for _, uid := range users {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			for i := 1; i <= perUser; i++ {
				err := s.Mutate("g1", uid, func(cur *models.WarnBucket) (*models.WarnBucket, error) {
					next := cur.Clone()
					next.Entries = append(next.Entries, testWarning(next.Counter, "concurrent"))
					next.Counter++
					return next, nil
				})
				if err != nil {
					t.Errorf("Mutate(%s) error = %v", uid, err)
					return
				}
			}
		}(uid)
	}
	wg.Wait()

	// Every write must survive into the durable document
	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	for _, uid := range users {
		bucket := reloaded.Read("g1", uid)
		if len(bucket.Entries) != perUser {
			t.Errorf("user %s has %d entries, want %d", uid, len(bucket.Entries), perUser)
		}
		if bucket.Counter != perUser+1 {
			t.Errorf("user %s counter = %d, want %d", uid, bucket.Counter, perUser+1)
		}
	}
}

func TestReadAllIsACopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Mutate("g1", "u1", appendEntry(testWarning(1, "spam"))); err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	dump := s.ReadAll()
	dump["g1"]["u1"].Entries[0].Reason = "tampered"

	bucket := s.Read("g1", "u1")
	if bucket.Entries[0].Reason != "spam" {
		t.Error("ReadAll() returned a live reference, not a copy")
	}
}
