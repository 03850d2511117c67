package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/nextcareer/nextcareer/internal/models"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"auto":    ColorAuto,
		"":        ColorAuto,
		"rainbow": ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColorDisabledByFlagsAndEnv(t *testing.T) {
	var out bytes.Buffer
	if New(&out, &out, ColorAlways, true).ColorEnabled {
		t.Fatalf("disableColor must win over --color=always")
	}

	t.Setenv("NO_COLOR", "1")
	if New(&out, &out, ColorAlways, false).ColorEnabled {
		t.Fatalf("NO_COLOR must disable color")
	}
}

func TestMessagesArePlainWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Errorf("boom: %s\n", "x")
	u.Infof("hello")
	u.Mutedf("hint")

	if errOut.String() != "boom: x\n" {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if out.String() != "hello\nhint\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestBadges(t *testing.T) {
	var buf bytes.Buffer
	output := termenv.NewOutput(&buf, termenv.WithProfile(termenv.TrueColor))

	if got := StatusBadge(output, false, models.StatusOpen); got != "Open" {
		t.Fatalf("StatusBadge(disabled) = %q", got)
	}
	if got := WorkTypeBadge(nil, true, models.WorkHybrid); got != "Hybrid" {
		t.Fatalf("WorkTypeBadge(nil output) = %q", got)
	}

	open := StatusBadge(output, true, models.StatusOpen)
	closed := StatusBadge(output, true, models.StatusClosed)
	if !strings.Contains(open, "\x1b[") || !strings.Contains(open, "Open") {
		t.Fatalf("StatusBadge(open) = %q, want colored label", open)
	}
	if open == strings.Replace(closed, "Closed", "Open", 1) {
		t.Fatalf("open and closed badges share a color")
	}

	seen := map[string]struct{}{}
	for _, wt := range models.WorkTypes {
		badge := WorkTypeBadge(output, true, wt)
		prefix := strings.TrimSuffix(badge, string(wt)+"\x1b[0m")
		if _, dup := seen[prefix]; dup {
			t.Fatalf("work type %s reuses a badge color", wt)
		}
		seen[prefix] = struct{}{}
	}
}
