package dgram

import (
	"strings"
	"testing"
)

func TestTruncatePathShortUnchanged(t *testing.T) {
	if got := truncatePath("/tmp/x"); got != "/tmp/x" {
		t.Errorf("truncatePath(/tmp/x) = %q", got)
	}
	if got := truncatePath(""); got != "" {
		t.Errorf("truncatePath(\"\") = %q", got)
	}
}

func TestTruncatePathAtBound(t *testing.T) {
	exact := strings.Repeat("a", SunPathMax)
	if got := truncatePath(exact); got != exact {
		t.Errorf("path of exactly SunPathMax bytes was modified")
	}
}

func TestTruncatePathOverLength(t *testing.T) {
	long := "/tmp/" + strings.Repeat("b", 300)
	got := truncatePath(long)
	if len(got) != SunPathMax {
		t.Fatalf("len = %d, want %d", len(got), SunPathMax)
	}
	if got != long[:SunPathMax] {
		t.Error("truncation is not a deterministic prefix")
	}
	// Truncation must be stable across calls.
	if again := truncatePath(long); again != got {
		t.Error("truncation not deterministic")
	}
}
