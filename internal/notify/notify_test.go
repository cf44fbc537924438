package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestToastLifecycle(t *testing.T) {
	var out bytes.Buffer

	toast := Show(&out, "Adding buddy...")
	toast.Fail("Failed to add buddy", errors.New("disk full"))

	if toast.Style != Failure {
		t.Fatalf("expected failure style, got %v", toast.Style)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "… Adding buddy..." {
		t.Errorf("unexpected animated line %q", lines[0])
	}
	if lines[1] != "✗ Failed to add buddy: disk full" {
		t.Errorf("unexpected failure line %q", lines[1])
	}

	out.Reset()
	Show(&out, "Updating buddy...").Succeed("Buddy updated")
	if !strings.HasSuffix(out.String(), "✓ Buddy updated\n") {
		t.Errorf("unexpected success output %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Delete this buddy?", "This action cannot be undone.", "Delete")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Delete this buddy?") {
			t.Errorf("prompt missing title: %q", out.String())
		}
	}
}
