package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"call-center-server/internal/domain/call"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()

	sess := &call.Session{CallID: "call_1", Status: call.StatusInitiated}
	if err := s.Create(ctx, sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Get(ctx, "call_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != sess {
		t.Error("Get() returned a different session instance")
	}
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()

	if err := s.Create(ctx, &call.Session{CallID: "call_1"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, &call.Session{CallID: "call_1"}); !errors.Is(err, call.ErrSessionExists) {
		t.Errorf("duplicate Create() error = %v, want ErrSessionExists", err)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())

	if _, err := s.Get(context.Background(), "call_missing"); !errors.Is(err, call.ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_ListKeepsTerminalSessions(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()

	if err := s.Create(ctx, &call.Session{CallID: "call_live", Status: call.StatusInProgress}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, &call.Session{CallID: "call_done", Status: call.StatusCompleted}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	sessions, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("List() returned %d sessions, want 2 (terminal sessions stay registered)", len(sessions))
	}

	if _, err := s.Get(ctx, "call_done"); err != nil {
		t.Errorf("Get(terminal) error = %v, want nil", err)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("call_%d", n)
			if err := s.Create(ctx, &call.Session{CallID: id}); err != nil {
				t.Errorf("Create(%s) error = %v", id, err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Errorf("Get(%s) error = %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	sessions, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 50 {
		t.Errorf("List() returned %d sessions, want 50", len(sessions))
	}
}
