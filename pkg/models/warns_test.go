package models

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestWarnBucketUnmarshalCurrentShape(t *testing.T) {
	data := []byte(`{"counter":7,"entries":[{"id":3,"reason":"a","moderator":"m","moderator_name":"M","timestamp":"2026-01-01T00:00:00Z"}]}`)

	var b WarnBucket
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if b.Counter != 7 {
		t.Errorf("counter = %d, want 7", b.Counter)
	}
	if len(b.Entries) != 1 || b.Entries[0].ID != 3 {
		t.Errorf("entries wrong: %+v", b.Entries)
	}
}

func TestWarnBucketUnmarshalLegacyList(t *testing.T) {
	data := []byte(`[{"id":1,"reason":"a","moderator":"m","moderator_name":"","timestamp":"2026-01-01T00:00:00Z"},{"id":5,"reason":"b","moderator":"m","moderator_name":"","timestamp":"2026-01-02T00:00:00Z"}]`)

	var b WarnBucket
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(b.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(b.Entries))
	}
	// Highest observed id wins over the entry count
	if b.Counter != 6 {
		t.Errorf("rebuilt counter = %d, want 6", b.Counter)
	}
}

func TestWarnBucketUnmarshalStaleCounter(t *testing.T) {
	// The counter on disk fell behind the highest id; never trust it
	data := []byte(`{"counter":2,"entries":[{"id":4,"reason":"a","moderator":"m","moderator_name":"","timestamp":"2026-01-01T00:00:00Z"}]}`)

	var b WarnBucket
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if b.Counter != 5 {
		t.Errorf("counter = %d, want 5", b.Counter)
	}
}

func TestWarnBucketMaxID(t *testing.T) {
	b := &WarnBucket{Entries: []Warning{{ID: 2}, {ID: 9}, {ID: 4}}}
	if got := b.MaxID(); got != 9 {
		t.Errorf("MaxID() = %d, want 9", got)
	}

	empty := &WarnBucket{}
	if got := empty.MaxID(); got != 0 {
		t.Errorf("MaxID() empty = %d, want 0", got)
	}
}

func TestWarnBucketClone(t *testing.T) {
	orig := &WarnBucket{Counter: 3, Entries: []Warning{{ID: 1, Reason: "a"}}}

	clone := orig.Clone()
	clone.Entries[0].Reason = "changed"
	clone.Counter = 99

	if orig.Entries[0].Reason != "a" || orig.Counter != 3 {
		t.Error("Clone() shares state with the original")
	}

	var nilBucket *WarnBucket
	if nilBucket.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}
