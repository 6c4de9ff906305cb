package moderation

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/SentryLabs/SentryBotGo/pkg/warnstore"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warnings.json")
	store, err := warnstore.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return NewService(store), path
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	svc, _ := newTestService(t)

	for want := 1; want <= 3; want++ {
		w, total, err := svc.Add("g1", "u1", "spamming", "mod-1", "Mod")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if w.ID != want {
			t.Errorf("Add() id = %d, want %d", w.ID, want)
		}
		if total != want {
			t.Errorf("Add() total = %d, want %d", total, want)
		}
	}
}

func TestAddRejectsEmptyReason(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Add("g1", "u1", "   ", "mod-1", "Mod")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add() error = %v, want ErrInvalidArgument", err)
	}
}

func TestRemovedIDIsNeverReused(t *testing.T) {
	svc, _ := newTestService(t)

	svc.mustAdd(t, "g1", "u1", "first")
	svc.mustAdd(t, "g1", "u1", "second")

	if _, remaining, err := svc.RemoveByID("g1", "u1", 1); err != nil {
		t.Fatalf("RemoveByID() error = %v", err)
	} else if remaining != 1 {
		t.Errorf("RemoveByID() remaining = %d, want 1", remaining)
	}

	w, total, err := svc.Add("g1", "u1", "third", "mod-1", "Mod")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if w.ID != 3 {
		t.Errorf("id after removal = %d, want 3", w.ID)
	}
	if total != 2 {
		t.Errorf("total after removal = %d, want 2", total)
	}

	entries, err := svc.List("g1", "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 2 || entries[1].ID != 3 {
		t.Errorf("surviving ids wrong: %+v", entries)
	}
}

func TestRemoveByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, _, err := svc.RemoveByID("g1", "u1", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveByID() on empty bucket error = %v, want ErrNotFound", err)
	}

	svc.mustAdd(t, "g1", "u1", "only")

	if _, _, err := svc.RemoveByID("g1", "u1", 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveByID() unknown id error = %v, want ErrNotFound", err)
	}

	if _, _, err := svc.RemoveByID("g1", "u1", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RemoveByID(0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestNumberingContinuesAfterClear(t *testing.T) {
	svc, _ := newTestService(t)

	svc.mustAdd(t, "g1", "u1", "one")
	svc.mustAdd(t, "g1", "u1", "two")

	cleared, err := svc.ClearForUser("g1", "u1")
	if err != nil {
		t.Fatalf("ClearForUser() error = %v", err)
	}
	if cleared != 2 {
		t.Errorf("ClearForUser() = %d, want 2", cleared)
	}

	entries, _ := svc.List("g1", "u1")
	if len(entries) != 0 {
		t.Fatalf("List() after clear = %d entries, want 0", len(entries))
	}

	// Within the process, ids keep counting forward after a clear
	w, _, err := svc.Add("g1", "u1", "back again", "mod-1", "Mod")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if w.ID != 3 {
		t.Errorf("id after clear = %d, want 3", w.ID)
	}
}

func TestClearEmptyBucket(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ClearForUser("g1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ClearForUser() on empty bucket error = %v, want ErrNotFound", err)
	}
}

func TestCounterSurvivesReload(t *testing.T) {
	svc, path := newTestService(t)

	svc.mustAdd(t, "g1", "u1", "one")
	svc.mustAdd(t, "g1", "u1", "two")
	if _, _, err := svc.RemoveByID("g1", "u1", 2); err != nil {
		t.Fatalf("RemoveByID() error = %v", err)
	}

	// A new process over the same file must not reissue id 2
	store, err := warnstore.Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	fresh := NewService(store)

	w, _, err := fresh.Add("g1", "u1", "three", "mod-1", "Mod")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if w.ID != 3 {
		t.Errorf("id after reload = %d, want 3", w.ID)
	}
}

func TestBucketsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)

	svc.mustAdd(t, "g1", "u1", "a")
	svc.mustAdd(t, "g1", "u1", "b")

	w, _, err := svc.Add("g1", "u2", "other user", "mod-1", "Mod")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if w.ID != 1 {
		t.Errorf("other user's first id = %d, want 1", w.ID)
	}

	w, _, err = svc.Add("g2", "u1", "other guild", "mod-1", "Mod")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if w.ID != 1 {
		t.Errorf("other guild's first id = %d, want 1", w.ID)
	}
}

func TestConcurrentAddsToOneUser(t *testing.T) {
	svc, path := newTestService(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, _, err := svc.Add("g1", "u1", fmt.Sprintf("reason %d", i), "mod-1", "Mod"); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Add() error = %v", err)
	}

	entries, err := svc.List("g1", "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != n {
		t.Fatalf("got %d entries, want %d", len(entries), n)
	}
	seen := make(map[int]bool, n)
	for _, w := range entries {
		if w.ID < 1 || w.ID > n {
			t.Errorf("id %d outside 1..%d", w.ID, n)
		}
		if seen[w.ID] {
			t.Errorf("id %d assigned twice", w.ID)
		}
		seen[w.ID] = true
	}

	reopened, err := warnstore.Open(path)
	if err != nil {
		t.Fatalf("Open() after reload error = %v", err)
	}
	bucket := reopened.Read("g1", "u1")
	if len(bucket.Entries) != n {
		t.Errorf("persisted %d entries, want %d", len(bucket.Entries), n)
	}
	if bucket.Counter != n+1 {
		t.Errorf("persisted counter = %d, want %d", bucket.Counter, n+1)
	}
}

func TestChangeHooksObserveMutations(t *testing.T) {
	svc, _ := newTestService(t)

	var records []ChangeRecord
	svc.OnChange(func(rec ChangeRecord) {
		records = append(records, rec)
	})

	svc.mustAdd(t, "g1", "u1", "one")
	svc.mustAdd(t, "g1", "u1", "two")
	if _, _, err := svc.RemoveByID("g1", "u1", 1); err != nil {
		t.Fatalf("RemoveByID() error = %v", err)
	}
	if _, err := svc.ClearForUser("g1", "u1"); err != nil {
		t.Fatalf("ClearForUser() error = %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("hook saw %d records, want 4", len(records))
	}

	wantOps := []string{"add", "add", "remove", "clear"}
	for i, op := range wantOps {
		if records[i].Op != op {
			t.Errorf("record %d op = %q, want %q", i, records[i].Op, op)
		}
	}
	if records[2].Warning == nil || records[2].Warning.ID != 1 {
		t.Errorf("remove record missing warning: %+v", records[2])
	}
	if records[3].Cleared != 1 {
		t.Errorf("clear record cleared = %d, want 1", records[3].Cleared)
	}
}

// mustAdd is a test helper for the common successful-add case
func (s *Service) mustAdd(t *testing.T, guildID, userID, reason string) {
	t.Helper()
	if _, _, err := s.Add(guildID, userID, reason, "mod-1", "Mod"); err != nil {
		t.Fatalf("Add(%s) error = %v", reason, err)
	}
}
