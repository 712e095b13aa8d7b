package ui

// tally counts reactions per glyph. Ties for the top spot go to the glyph
// that reached the count first.
type tally struct {
	counts map[string]int
	total  int
	top    string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(glyph string, n int) {
	if n <= 0 {
		return
	}
	t.counts[glyph] += n
	t.total += n
	if t.top == "" || t.counts[glyph] > t.counts[t.top] {
		t.top = glyph
	}
}

// leader returns the most frequent glyph and its count, or "" before any
// reaction.
func (t *tally) leader() (string, int) {
	return t.top, t.counts[t.top]
}

func (t *tally) count(glyph string) int {
	return t.counts[glyph]
}
