package memory

import (
	"context"
	"testing"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := New()

	if _, ok, err := m.GetItem(ctx, "k"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := m.SetItem(ctx, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetItem(ctx, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := m.GetItem(ctx, "k"); !ok || v != "v2" {
		t.Fatalf("expected v2, got %q (ok=%v)", v, ok)
	}

	if err := m.RemoveItem(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.GetItem(ctx, "k"); ok {
		t.Fatal("expected key to be removed")
	}
}
