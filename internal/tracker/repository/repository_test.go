package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/domain"
)

func TestMemoryRegistry_Create_AssignsSequentialIDs(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()

	for i, name := range []string{"alice", "bob", "carol"} {
		s, err := r.Create(ctx, name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		want := domain.ID(strconv.Itoa(i + 1))
		if s.ID != want {
			t.Errorf("expected id %s, got %s", want, s.ID)
		}
		if s.Username != name {
			t.Errorf("expected username %s, got %s", name, s.Username)
		}
	}

	users, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 || users[0].Username != "alice" || users[2].Username != "carol" {
		t.Errorf("expected creation order, got %v", users)
	}
}

func TestMemoryRegistry_Create_Duplicate(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()

	if _, err := r.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := r.Create(ctx, "alice")
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
	if r.Count(ctx) != 1 {
		t.Errorf("expected 1 user, got %d", r.Count(ctx))
	}

	next, err := r.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("usernames are case-sensitive, got %v", err)
	}
	if next.ID != "2" {
		t.Errorf("expected id 2 after a rejected duplicate, got %s", next.ID)
	}
}

func TestMemoryRegistry_Append(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()
	s, _ := r.Create(ctx, "alice")

	for i := 0; i < 3; i++ {
		_, err := r.Append(ctx, s.ID, domain.Exercise{
			Description: fmt.Sprintf("run %d", i),
			Duration:    coerce.Valid(float64(i)),
			Date:        "Mon Jan 01 2024",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	user, err := r.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.ExerciseCount != 3 || len(user.Log) != 3 {
		t.Fatalf("expected 3 entries, got count=%d len=%d", user.ExerciseCount, len(user.Log))
	}
	for i, e := range user.Log {
		if e.Description != fmt.Sprintf("run %d", i) {
			t.Errorf("entry %d out of order: %s", i, e.Description)
		}
	}
}

func TestMemoryRegistry_Append_UnknownUser(t *testing.T) {
	r := NewMemoryRegistry()
	_, err := r.Append(context.Background(), "42", domain.Exercise{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryRegistry_FindByID_ReturnsCopy(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()
	s, _ := r.Create(ctx, "alice")
	_, _ = r.Append(ctx, s.ID, domain.Exercise{Description: "run"})

	user, _ := r.FindByID(ctx, s.ID)
	user.Log[0].Description = "mutated"
	user.Log = user.Log[:0]

	again, _ := r.FindByID(ctx, s.ID)
	if len(again.Log) != 1 || again.Log[0].Description != "run" {
		t.Errorf("expected stored log untouched, got %v", again.Log)
	}
}

func TestMemoryRegistry_ConcurrentCreate(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := make(map[domain.ID]bool)
	taken := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.Create(ctx, fmt.Sprintf("user-%d", i%10))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				taken++
				return
			}
			if ids[s.ID] {
				t.Errorf("duplicate id %s", s.ID)
			}
			ids[s.ID] = true
		}(i)
	}
	wg.Wait()

	if len(ids) != 10 || taken != 40 {
		t.Errorf("expected 10 users and 40 rejections, got %d and %d", len(ids), taken)
	}
	for i := 1; i <= 10; i++ {
		if !ids[domain.ID(strconv.Itoa(i))] {
			t.Errorf("expected id %d to be assigned", i)
		}
	}
}
