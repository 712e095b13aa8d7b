package reaction

import "math"

const elasticPeriod = 0.4

// ElasticEase is an elastic ease-out on [0, 1]. It overshoots past 1 early
// on before settling, which is what gives the pop-in its bounce.
func ElasticEase(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const p = elasticPeriod
	return math.Pow(2, -10*t)*math.Sin((t-p/4)*(2*math.Pi)/p) + 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
