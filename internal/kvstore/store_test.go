package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Put(ctx, "txn", []byte(`{"status":"initiated"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, "txn")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"status":"initiated"}` {
		t.Errorf("Unexpected value %q", value)
	}

	if err := store.Delete(ctx, "txn"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "txn"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	if err := store.Put(ctx, "k", value); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value[0] = 'X'

	stored, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(stored) != "original" {
		t.Errorf("Stored value was mutated through caller's slice: %q", stored)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "test", time.Minute)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Put(ctx, "chat", []byte("history")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, err := store.Get(ctx, "chat")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "history" {
		t.Errorf("Unexpected value %q", value)
	}

	if err := store.Delete(ctx, "chat"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "chat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
