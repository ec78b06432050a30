package usecase

import (
	"strings"
	"testing"
)

func TestNewQueryPreprocessor(t *testing.T) {
	t.Run("creates preprocessor with debug logging disabled", func(t *testing.T) {
		p := NewQueryPreprocessor(false)
		if p.enableDebugLogging {
			t.Error("expected debug logging to be disabled")
		}
	})

	t.Run("creates preprocessor with debug logging enabled", func(t *testing.T) {
		p := NewQueryPreprocessor(true)
		if !p.enableDebugLogging {
			t.Error("expected debug logging to be enabled")
		}
	})
}

func TestPreprocessQuery(t *testing.T) {
	p := NewQueryPreprocessor(false)

	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "drops brackets but keeps variant",
			title: "Acme Phone X (Midnight, 128 GB)",
			want:  "Acme Phone X Midnight, 128 GB",
		},
		{
			name:  "collapses whitespace",
			title: "  Acme   Phone \t X  ",
			want:  "Acme Phone X",
		},
		{
			name:  "replaces ampersand",
			title: "Salt & Pepper Grinder",
			want:  "Salt and Pepper Grinder",
		},
		{
			name:  "removes url-breaking characters",
			title: "Acme #1 Phone+ [Blue]",
			want:  "Acme 1 Phone Blue",
		},
		{
			name:  "removes badge words",
			title: "NEW Acme Phone X Combo",
			want:  "Acme Phone X",
		},
		{
			name:  "removes orphaned separators",
			title: "Acme Phone X - | Sale",
			want:  "Acme Phone X",
		},
		{
			name:  "empty title",
			title: "   ",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.PreprocessQuery(tc.title)
			if got != tc.want {
				t.Errorf("PreprocessQuery(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestPreprocessQuery_LongTitle(t *testing.T) {
	p := NewQueryPreprocessor(false)
	title := strings.Repeat("word ", 40)

	got := p.PreprocessQuery(title)

	if len(got) > maxQueryLength {
		t.Errorf("len = %d, want <= %d", len(got), maxQueryLength)
	}
	if strings.HasSuffix(got, " ") || strings.HasSuffix(got, "wor") {
		t.Errorf("query %q not cut at a word boundary", got)
	}
}

func TestNormalizeForCacheKey(t *testing.T) {
	if got := normalizeForCacheKey("  iPhone   15 PRO "); got != "iphone 15 pro" {
		t.Errorf("normalizeForCacheKey() = %q, want %q", got, "iphone 15 pro")
	}
}
