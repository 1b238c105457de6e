// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settle

const (
	StreakHit  = "hit"
	StreakMiss = "miss"
)

type Streaks struct {
	BestHit     int    `json:"best_hit_streak"`
	BestMiss    int    `json:"best_miss_streak"`
	Current     int    `json:"current_streak"`
	CurrentType string `json:"current_streak_type,omitempty"`
}

// StreaksOf scans outcomes oldest first. A run resets the moment the
// outcome flips between hit and miss.
func StreaksOf(outcomes []bool) Streaks {
	var s Streaks
	hit, miss := 0, 0
	for _, ok := range outcomes {
		if ok {
			hit++
			miss = 0
			s.BestHit = max(s.BestHit, hit)
		} else {
			miss++
			hit = 0
			s.BestMiss = max(s.BestMiss, miss)
		}
	}
	if n := len(outcomes); n > 0 {
		if outcomes[n-1] {
			s.Current, s.CurrentType = hit, StreakHit
		} else {
			s.Current, s.CurrentType = miss, StreakMiss
		}
	}
	return s
}

// PickStreaks is StreaksOf over a member's ordered history.
func PickStreaks(picks []Pick) Streaks {
	outcomes := make([]bool, len(picks))
	for i, p := range picks {
		outcomes[i] = p.Correct
	}
	return StreaksOf(outcomes)
}
