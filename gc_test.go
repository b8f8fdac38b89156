package main

import (
	"testing"
	"time"
)

func TestRecordsToDelete(t *testing.T) {
	cases := []struct {
		current, max int64
		want         int
	}{
		{120, 100, 40 * 1024}, // reduce 120MB to 80MB
		{100, 100, 20 * 1024},
		{50, 100, 0},
	}
	for _, c := range cases {
		if got := recordsToDelete(c.current, c.max); got != c.want {
			t.Errorf("recordsToDelete(%d, %d) = %d, want %d", c.current, c.max, got, c.want)
		}
	}
}

func TestGarbageCollectorRetention(t *testing.T) {
	store := openTestStore(t)

	old := newCommand("ancient command", "/tmp", 0, 10, time.Now().AddDate(0, 0, -30), "s1")
	fresh := newCommand("recent command", "/tmp", 0, 10, time.Now(), "s1")
	if err := store.Save(old); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save(fresh); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	gc := NewGarbageCollector(store, 7, 0)
	result, err := gc.Run()
	if err != nil {
		t.Fatalf("gc failed: %v", err)
	}

	if result.DeletedByAge != 1 {
		t.Errorf("deleted by age = %d, want 1", result.DeletedByAge)
	}
	count, err := store.CountAll()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("count after gc = %d, want 1", count)
	}
}

func TestGarbageCollectorDisabled(t *testing.T) {
	store := openTestStore(t)
	if err := store.Save(newCommand("keep me", "/tmp", 0, 10, time.Now().AddDate(0, 0, -365), "s1")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	gc := NewGarbageCollector(store, 0, 0)
	result, err := gc.Run()
	if err != nil {
		t.Fatalf("gc failed: %v", err)
	}
	if result.DeletedByAge+result.DeletedBySize != 0 {
		t.Errorf("disabled gc deleted %d commands", result.DeletedByAge+result.DeletedBySize)
	}
}
