package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Kind", KeyKind, "post", Kind("post")},
		{"File", KeyFile, "2026-02-Title.docx", File("2026-02-Title.docx")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Output", KeyOutput, "_posts/a.md", Output("_posts/a.md")},
		{"Reason", KeyReason, "exists", Reason("exists")},
		{"Status", KeyStatus, "converted", Status("converted")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, got)
		}
	}
}

func TestCountersAndDuration(t *testing.T) {
	if a := Converted(3); a.Key != KeyConverted || a.Value.Int64() != 3 {
		t.Fatalf("unexpected converted attr: %v", a)
	}
	if a := Skipped(2); a.Key != KeySkipped || a.Value.Int64() != 2 {
		t.Fatalf("unexpected skipped attr: %v", a)
	}
	if a := Duration(1500 * time.Millisecond); a.Key != KeyDurationMS || a.Value.Float64() != 1500 {
		t.Fatalf("unexpected duration attr: %v", a)
	}
}

func TestErrorNilSafe(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("expected boom, got %q", a.Value.String())
	}
}
