package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesSamePath(t *testing.T) {
	var mu sync.Mutex
	var batches [][]Change

	d := NewDebouncer(20*time.Millisecond, 100, func(changes []Change) {
		mu.Lock()
		batches = append(batches, changes)
		mu.Unlock()
	})
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(Change{Path: "/docs/index.html", Type: ChangeModify, Timestamp: time.Now()})
	}
	d.Add(Change{Path: "/docs/about.html", Type: ChangeCreate, Timestamp: time.Now()})

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("flushes = %d, want 1", len(batches))
	}
	if len(batches[0]) != 2 {
		t.Fatalf("batch size = %d, want 2 coalesced paths", len(batches[0]))
	}
}

func TestDebouncerFlushesFullBatch(t *testing.T) {
	flushed := make(chan []Change, 1)

	d := NewDebouncer(time.Hour, 2, func(changes []Change) {
		flushed <- changes
	})
	defer d.Stop()

	d.Add(Change{Path: "/a.html", Type: ChangeModify})
	d.Add(Change{Path: "/b.html", Type: ChangeModify})

	select {
	case batch := <-flushed:
		if len(batch) != 2 {
			t.Fatalf("batch size = %d, want 2", len(batch))
		}
	case <-time.After(time.Second):
		t.Fatal("full batch was not flushed immediately")
	}
}

func TestDebouncerStopFlushesPending(t *testing.T) {
	flushed := make(chan []Change, 1)

	d := NewDebouncer(time.Hour, 100, func(changes []Change) {
		flushed <- changes
	})

	d.Add(Change{Path: "/a.html", Type: ChangeDelete})
	d.Stop()

	select {
	case batch := <-flushed:
		if len(batch) != 1 {
			t.Fatalf("batch size = %d, want 1", len(batch))
		}
	case <-time.After(time.Second):
		t.Fatal("pending change lost on stop")
	}

	// Adds after Stop are dropped.
	d.Add(Change{Path: "/b.html", Type: ChangeModify})
	select {
	case batch := <-flushed:
		t.Fatalf("unexpected flush after stop: %v", batch)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeCancel(t *testing.T) {
	w, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fsWatcher.Close()

	var mu sync.Mutex
	calls := 0
	cancel := w.Subscribe(func([]Change) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	w.publish([]Change{{Path: "/a.html"}})
	cancel()
	w.publish([]Change{{Path: "/b.html"}})

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (cancel should unsubscribe)", calls)
	}
}

func TestIsDocument(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/site/index.html", true},
		{"/site/INDEX.HTM", true},
		{"/site/app.js", false},
		{"/site/readme.md", false},
		{"/site/html", false},
	}
	for _, tc := range cases {
		if got := isDocument(tc.path); got != tc.want {
			t.Errorf("isDocument(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestShouldIgnore(t *testing.T) {
	w, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fsWatcher.Close()

	if !w.shouldIgnore("/site/node_modules/pkg/index.html") {
		t.Error("node_modules should be ignored")
	}
	if !w.shouldIgnore("/site/.cache") {
		t.Error("hidden entries should be ignored")
	}
	if w.shouldIgnore("/site/pages/index.html") {
		t.Error("regular document should not be ignored")
	}
}
