// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package settle decides which toto bets won.

# Rules

  - weapon, first_death, last_death: the bet must equal the result exactly
    (case-sensitive).
  - wipe_count, total_deaths: the closest guess wins. If several guesses
    are equally close, those at or under the result win; if none are
    under, all the tied guesses win. Non-numeric guesses never win.

A round is only judged once it is finished and carries a result.

# Usage

	s := settle.Round(round, bets)
	s.Winners // member ids

	ledger := settle.All(rounds, bets)
	picks := ledger.History(memberID)
	streaks := settle.PickStreaks(picks)
*/
package settle
