package ui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/tapburst/internal/config"
)

func TestBurstModeCycle(t *testing.T) {
	b := BurstOff
	if b.String() != "single" || b.Icon() != "" {
		t.Fatalf("unexpected off state: %q %q", b.String(), b.Icon())
	}
	b = b.Next()
	if b != BurstOn || b.String() != "burst" || b.Icon() != "[burst]" {
		t.Fatalf("unexpected on state: %q %q", b.String(), b.Icon())
	}
	if b.Next() != BurstOff {
		t.Fatal("expected burst mode to cycle back off")
	}
}

func TestBurstCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for range 50 {
		if n := BurstOff.Count(rng); n != 1 {
			t.Fatalf("expected single spawn when off, got %d", n)
		}
	}

	seen := map[int]int{}
	for range 600 {
		n := BurstOn.Count(rng)
		if n < 1 || n > 3 {
			t.Fatalf("unexpected burst count %d", n)
		}
		seen[n]++
	}
	if len(seen) != 3 {
		t.Fatalf("expected all counts to occur, got %v", seen)
	}
	if seen[1] <= seen[3] {
		t.Fatalf("expected singles to outnumber triples, got %v", seen)
	}
}

func TestTallyLeader(t *testing.T) {
	tl := newTally()
	if glyph, n := tl.leader(); glyph != "" || n != 0 {
		t.Fatalf("expected no leader, got %q %d", glyph, n)
	}

	tl.add("❤️", 2)
	tl.add("😂", 2)
	if glyph, _ := tl.leader(); glyph != "❤️" {
		t.Fatalf("expected tie to keep the first leader, got %q", glyph)
	}

	tl.add("😂", 1)
	tl.add("👍", 0)
	if glyph, n := tl.leader(); glyph != "😂" || n != 3 {
		t.Fatalf("expected 😂 x3, got %q x%d", glyph, n)
	}
	if tl.total != 5 || tl.count("👍") != 0 {
		t.Fatalf("unexpected totals: %d, %d", tl.total, tl.count("👍"))
	}
}

func TestSpringFieldSettles(t *testing.T) {
	s := newSpringField(frameRate, 2, 6, 0.6)
	s.kick(0, 1)
	s.kick(5, 1)

	for range 120 {
		s.step(0, 0)
		s.step(1, 0.5)
	}
	if v := s.value(0); v > 0.01 || v < -0.01 {
		t.Fatalf("expected kicked value to settle at 0, got %v", v)
	}
	if v := s.value(1); v < 0.49 || v > 0.51 {
		t.Fatalf("expected value to reach 0.5, got %v", v)
	}
	if s.value(-1) != 0 || s.value(9) != 0 {
		t.Fatal("expected out of range values to read 0")
	}
}

func TestButtonAt(t *testing.T) {
	catalog := config.Default().Emojis
	first := lipgloss.Width(buttonStyle.Render(buttonLabel(0, catalog[0])))

	tests := []struct {
		x    int
		want int
		ok   bool
	}{
		{0, 0, false},
		{indent, 0, true},
		{indent + first - 1, 0, true},
		{indent + first, 1, true},
		{1000, 0, false},
	}
	for _, tt := range tests {
		got, ok := buttonAt(catalog, tt.x)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("buttonAt(%d): expected (%d, %v), got (%d, %v)", tt.x, tt.want, tt.ok, got, ok)
		}
	}
}

func TestRenderStats(t *testing.T) {
	tl := newTally()
	if got := renderStats(0, 0, tl, 0); got != "Reactions: 0  |  Active: 0  |  0:00  |  0.0/s" {
		t.Fatalf("unexpected empty stats %q", got)
	}

	tl.add("❤️", 4)
	got := renderStats(10, 3, tl, 5*time.Second)
	want := "Reactions: 10  |  Active: 3  |  Top: ❤️ ×4  |  0:05  |  2.0/s"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderHeaderFlags(t *testing.T) {
	if got := renderHeader(60, BurstOff, true); strings.Contains(got, "[") {
		t.Fatalf("expected no flags, got %q", got)
	}
	got := renderHeader(60, BurstOn, false)
	if !strings.Contains(got, "[burst] [muted]") {
		t.Fatalf("expected burst and muted flags, got %q", got)
	}
}

func TestReactionIndex(t *testing.T) {
	if i, ok := reactionIndex(keyRune('1')); !ok || i != 0 {
		t.Fatalf("expected slot 0, got %d %v", i, ok)
	}
	if i, ok := reactionIndex(keyRune('9')); !ok || i != 8 {
		t.Fatalf("expected slot 8, got %d %v", i, ok)
	}
	if _, ok := reactionIndex(keyRune('0')); ok {
		t.Fatal("expected 0 to have no slot")
	}
	if _, ok := reactionIndex(keyRune('b')); ok {
		t.Fatal("expected letters to have no slot")
	}
}
