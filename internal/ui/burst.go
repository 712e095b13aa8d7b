package ui

import "math/rand/v2"

// BurstMode selects how many reactions one press spawns.
type BurstMode int

const (
	BurstOff BurstMode = iota
	BurstOn
)

// burstWeights favours single spawns; a press spawns one of these counts.
var burstWeights = [...]int{1, 1, 1, 2, 2, 3}

// Next cycles to the next burst mode.
func (b BurstMode) Next() BurstMode {
	if b == BurstOn {
		return BurstOff
	}
	return BurstOn
}

// String returns the name of the burst mode.
func (b BurstMode) String() string {
	if b == BurstOn {
		return "burst"
	}
	return "single"
}

// Icon returns a visual indicator for the burst mode.
func (b BurstMode) Icon() string {
	if b == BurstOn {
		return "[burst]"
	}
	return ""
}

// Count draws the number of reactions for one press.
func (b BurstMode) Count(rng *rand.Rand) int {
	if b != BurstOn {
		return 1
	}
	return burstWeights[rng.IntN(len(burstWeights))]
}
