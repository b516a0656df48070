package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mrchongyl/zus-chatbot/pkg/store"
)

func TestGetOrCreateStartsEmpty(t *testing.T) {
	repo := NewSessionRepository()
	turns := repo.GetOrCreate("fresh")
	if len(turns) != 0 {
		t.Errorf("new session should have no turns, got %d", len(turns))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	repo := NewSessionRepository()
	repo.Append("s1", store.Turn{Role: store.RoleUser, Content: "hi"})
	repo.Append("s1",
		store.Turn{Role: store.RoleModel, Content: "hello"},
		store.Turn{Role: store.RoleUser, Content: "what is 2+2?"},
	)

	turns := repo.GetOrCreate("s1")
	want := []string{"hi", "hello", "what is 2+2?"}
	if len(turns) != len(want) {
		t.Fatalf("got %d turns, want %d", len(turns), len(want))
	}
	for i, content := range want {
		if turns[i].Content != content {
			t.Errorf("turns[%d].Content = %q, want %q", i, turns[i].Content, content)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := NewSessionRepository()
	repo.Append("a", store.Turn{Role: store.RoleUser, Content: "for a"})
	repo.Append("b", store.Turn{Role: store.RoleUser, Content: "for b"})

	if turns := repo.GetOrCreate("a"); len(turns) != 1 || turns[0].Content != "for a" {
		t.Errorf("session a = %+v", turns)
	}
	if turns := repo.GetOrCreate("b"); len(turns) != 1 || turns[0].Content != "for b" {
		t.Errorf("session b = %+v", turns)
	}
}

func TestClearThenGetIsEmpty(t *testing.T) {
	repo := NewSessionRepository()
	repo.Append("s1", store.Turn{Role: store.RoleUser, Content: "hi"})
	repo.Clear("s1")

	if turns := repo.GetOrCreate("s1"); len(turns) != 0 {
		t.Errorf("cleared session should be empty, got %d turns", len(turns))
	}
	// Clearing again must not panic.
	repo.Clear("s1")
	repo.Clear("never-existed")
}

func TestReturnedSliceIsACopy(t *testing.T) {
	repo := NewSessionRepository()
	repo.Append("s1", store.Turn{Role: store.RoleUser, Content: "original"})

	turns := repo.GetOrCreate("s1")
	turns[0].Content = "mutated"

	if again := repo.GetOrCreate("s1"); again[0].Content != "original" {
		t.Errorf("stored transcript was mutated through the returned slice")
	}
}

func TestConcurrentAppendsKeepAllTurns(t *testing.T) {
	repo := NewSessionRepository()
	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				repo.Append("shared", store.Turn{
					Role:    store.RoleUser,
					Content: fmt.Sprintf("w%d-%d", w, i),
				})
			}
		}(w)
	}
	wg.Wait()

	turns := repo.GetOrCreate("shared")
	if len(turns) != writers*perWriter {
		t.Errorf("got %d turns, want %d", len(turns), writers*perWriter)
	}
}
