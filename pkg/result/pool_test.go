package result

import (
	"strings"
	"testing"
)

func TestJoinMessages(t *testing.T) {
	if got := joinMessages("a", "b"); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
}

func TestPooledBuilderResetOnReturn(t *testing.T) {
	// Exhaust whatever is pooled, then confirm a recycled builder starts
	// empty: residue would surface as a corrupted prefix.
	for i := 0; i < 64; i++ {
		long := strings.Repeat("z", 512)
		if got := joinMessages(long, "tail"); got != long+"\ntail" {
			t.Fatalf("iteration %d produced corrupted output", i)
		}
		if got := joinMessages("a", "b"); got != "a\nb" {
			t.Fatalf("iteration %d leaked builder state: %q", i, got)
		}
	}
}
