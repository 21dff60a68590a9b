package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mergington/activities/internal/domain/model"
)

func TestMemStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	// Default catalog is seeded at construction
	if count := store.Count(ctx); count != 9 {
		t.Errorf("expected count 9, got %d", count)
	}
	if total := store.ParticipantCount(ctx); total != 14 {
		t.Errorf("expected 14 seeded participants, got %d", total)
	}

	// Known activity
	a, err := store.Get(ctx, "Basketball")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MaxParticipants != 15 {
		t.Errorf("expected max participants 15, got %d", a.MaxParticipants)
	}
	if len(a.Participants) != 1 || a.Participants[0] != "alex@mergington.edu" {
		t.Errorf("unexpected seeded roster: %v", a.Participants)
	}

	// Unknown activity
	if _, err := store.Get(ctx, "Swim Team"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}

	// List preserves catalog order
	activities, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities) != 9 {
		t.Fatalf("expected 9 activities, got %d", len(activities))
	}
	if activities[0].Name != "Chess Club" {
		t.Errorf("expected Chess Club first, got %s", activities[0].Name)
	}
}

func TestMemStore_Signup(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	// New student goes to the end of the roster
	if err := store.Signup(ctx, "Basketball", "newstudent@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := store.Get(ctx, "Basketball")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(a.Participants))
	}
	if a.Participants[1] != "newstudent@mergington.edu" {
		t.Errorf("expected new student appended last, got %v", a.Participants)
	}

	// Duplicate signup is rejected
	if err := store.Signup(ctx, "Basketball", "alex@mergington.edu"); !errors.Is(err, ErrAlreadySignedUp) {
		t.Errorf("expected ErrAlreadySignedUp, got %v", err)
	}

	// Unknown activity is rejected
	if err := store.Signup(ctx, "Swim Team", "someone@mergington.edu"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}

	// Signups past the advertised capacity are accepted
	small, err := store.Get(ctx, "Tennis Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := len(small.Participants); i < small.MaxParticipants+2; i++ {
		email := fmt.Sprintf("student%d@mergington.edu", i)
		if err := store.Signup(ctx, "Tennis Club", email); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	small, err = store.Get(ctx, "Tennis Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(small.Participants) != small.MaxParticipants+2 {
		t.Errorf("expected roster past capacity, got %d of %d",
			len(small.Participants), small.MaxParticipants)
	}
}

func TestMemStore_Unregister(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	// Remove a seeded student
	if err := store.Unregister(ctx, "Drama Club", "lucas@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := store.Get(ctx, "Drama Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Participants) != 1 || a.Participants[0] != "ava@mergington.edu" {
		t.Errorf("unexpected roster after unregister: %v", a.Participants)
	}

	// Not on the roster
	if err := store.Unregister(ctx, "Drama Club", "notstudent@mergington.edu"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}

	// Unknown activity
	if err := store.Unregister(ctx, "Swim Team", "ava@mergington.edu"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestMemStore_UnregisterKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, WithCatalog([]model.Activity{
		{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants: []string{
				"a@mergington.edu",
				"b@mergington.edu",
				"c@mergington.edu",
			},
		},
	}))
	defer store.Close()

	if err := store.Unregister(ctx, "Chess Club", "b@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := store.Get(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(a.Participants))
	}
	if a.Participants[0] != "a@mergington.edu" || a.Participants[1] != "c@mergington.edu" {
		t.Errorf("expected signup order preserved, got %v", a.Participants)
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	// Unregister then signup again should succeed
	if err := store.Unregister(ctx, "Basketball", "alex@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Signup(ctx, "Basketball", "alex@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := store.Get(ctx, "Basketball")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.HasParticipant("alex@mergington.edu") {
		t.Errorf("expected alex back on the roster, got %v", a.Participants)
	}
}

func TestMemStore_CopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	a, err := store.Get(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Participants[0] = "mutated@mergington.edu"
	a.Participants = append(a.Participants, "extra@mergington.edu")

	fresh, err := store.Get(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Participants[0] != "michael@mergington.edu" {
		t.Errorf("store roster mutated through a copy: %v", fresh.Participants)
	}
	if len(fresh.Participants) != 2 {
		t.Errorf("store roster grew through a copy: %v", fresh.Participants)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list[0].Participants[0] = "mutated@mergington.edu"

	fresh, err = store.Get(ctx, list[0].Name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Participants[0] == "mutated@mergington.edu" {
		t.Error("store roster mutated through List copy")
	}
}

func TestMemStore_CustomCatalog(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, WithCatalog([]model.Activity{
		{Name: "Astronomy Club", MaxParticipants: 8},
		{Name: "Astronomy Club", MaxParticipants: 99}, // duplicate name, ignored
		{Name: "Choir", MaxParticipants: 25, Participants: []string{"zoe@mergington.edu"}},
	}))
	defer store.Close()

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected 2 activities, got %d", count)
	}

	a, err := store.Get(ctx, "Astronomy Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MaxParticipants != 8 {
		t.Errorf("expected first definition to win, got max %d", a.MaxParticipants)
	}

	if total := store.ParticipantCount(ctx); total != 1 {
		t.Errorf("expected 1 participant, got %d", total)
	}
}

func TestMemStore_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, WithCatalog([]model.Activity{}))
	defer store.Close()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected empty registry, got %d activities", count)
	}

	activities, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("expected no activities, got %d", len(activities))
	}

	if err := store.Signup(ctx, "Anything", "a@mergington.edu"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestMemStore_SeedIsolation(t *testing.T) {
	ctx := context.Background()
	seed := []model.Activity{
		{Name: "Choir", MaxParticipants: 25, Participants: []string{"zoe@mergington.edu"}},
	}
	store := NewMemStore(ctx, WithCatalog(seed))
	defer store.Close()

	// Mutating the seed slice after construction must not affect the store
	seed[0].Participants[0] = "mutated@mergington.edu"

	a, err := store.Get(ctx, "Choir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Participants[0] != "zoe@mergington.edu" {
		t.Errorf("seed mutation leaked into store: %v", a.Participants)
	}
}

func TestMemStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)
	defer store.Close()

	numGoroutines := 10
	numSignups := 50

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numSignups; j++ {
				email := fmt.Sprintf("student%d_%d@mergington.edu", id, j)
				if err := store.Signup(ctx, "Gym Class", email); err != nil {
					t.Errorf("unexpected error for %s: %v", email, err)
				}
			}
		}(i)
	}

	// Concurrent readers while writes are in flight
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := store.List(ctx); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if _, err := store.Get(ctx, "Gym Class"); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	a, err := store.Get(ctx, "Gym Class")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := 2 + numGoroutines*numSignups // seeded + new signups
	if len(a.Participants) != expected {
		t.Errorf("expected %d participants, got %d", expected, len(a.Participants))
	}
}

func TestMemStore_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemStore(ctx, WithMetricsUpdateInterval(10*time.Millisecond))

	cancel()
	time.Sleep(30 * time.Millisecond)

	// Operations keep working after the metrics updater stopped
	if err := store.Signup(context.Background(), "Basketball", "late@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(context.Background()); count != 9 {
		t.Errorf("expected count 9, got %d", count)
	}

	if err := store.Close(); err != nil {
		t.Errorf("unexpected error on close: %v", err)
	}
}

func TestMemStore_CloseBehavior(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx)

	if err := store.Close(); err != nil {
		t.Errorf("unexpected error on close: %v", err)
	}
	// Closing twice should not panic
	if err := store.Close(); err != nil {
		t.Errorf("unexpected error on second close: %v", err)
	}
}
