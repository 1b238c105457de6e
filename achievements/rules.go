// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package achievements

import (
	"github.com/danielhkuo/raid-toto/awards"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/settle"
)

// Activity is the set of counters achievement rules are checked against.
type Activity struct {
	BetsPlaced     int
	CorrectBets    int
	BestHitStreak  int
	BestMissStreak int
	VoteSessions   int
	CategoryWins   map[string]int
	AllCategories  bool
}

// ActivityOf computes a member's counters from a snapshot. Bets placed
// counts every bet; correctness and streaks only count finished rounds.
func ActivityOf(snap *history.Snapshot, memberID string) Activity {
	picks := snap.Ledger.History(memberID)
	correct := 0
	for _, p := range picks {
		if p.Correct {
			correct++
		}
	}
	streaks := settle.PickStreaks(picks)
	wins := snap.Wins.For(memberID)

	return Activity{
		BetsPlaced:     len(snap.Ledger.MemberBets(memberID)),
		CorrectBets:    correct,
		BestHitStreak:  streaks.BestHit,
		BestMissStreak: streaks.BestMiss,
		VoteSessions:   snap.VoteSessions(memberID),
		CategoryWins:   wins,
		AllCategories:  awards.CoversAll(wins, snap.Categories),
	}
}

// Value reads the counter an achievement is defined on. Unknown counters
// read as zero so they never fire.
func (a Activity) Value(counter, category string) int {
	switch counter {
	case catalog.CounterBetsPlaced:
		return a.BetsPlaced
	case catalog.CounterCorrectBets:
		return a.CorrectBets
	case catalog.CounterBestHitStreak:
		return a.BestHitStreak
	case catalog.CounterBestMissStreak:
		return a.BestMissStreak
	case catalog.CounterVoteSessions:
		return a.VoteSessions
	case catalog.CounterCategoryWins:
		return a.CategoryWins[category]
	case catalog.CounterAllCategories:
		if a.AllCategories {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Satisfied returns the keys of every achievement the activity meets, in
// catalog order.
func Satisfied(cat *catalog.Catalog, a Activity) []string {
	var keys []string
	for _, ach := range cat.Achievements {
		if ach.Threshold > 0 && a.Value(ach.Counter, ach.Category) >= ach.Threshold {
			keys = append(keys, ach.Key)
		}
	}
	return keys
}
