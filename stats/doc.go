// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats builds the per-member dashboard.

Hit rates are integer percentages rounded half up: 1 of 3 is 33, 2 of 3 is
67, 1 of 8 is 13. A member with no finished bets has a rate of 0.

Correctness and streaks count finished rounds only. Recent bets include
open and closed rounds with a nil Correct.
*/
package stats
