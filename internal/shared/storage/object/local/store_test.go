package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if err := store.Put(ctx, "u1_intermediate.json", "application/json", strings.NewReader(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, err := store.Get(ctx, "u1_intermediate.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != `{"a":1}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestPutRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Put(context.Background(), "../escape.json", "application/json", strings.NewReader("x")); err == nil {
		t.Fatal("expected traversal rejection")
	}
	if err := store.Put(context.Background(), "/abs.json", "application/json", strings.NewReader("x")); err == nil {
		t.Fatal("expected absolute key rejection")
	}
}

func TestGetMissingKey(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Get(context.Background(), "missing.json"); err == nil {
		t.Fatal("expected error for missing object")
	}
}
