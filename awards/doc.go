// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package awards tallies award votes.

# Ranking

Within one session and category, nominees are ranked by vote count. Ties
go to the nominee whose first vote was cast earliest, then to the lowest
nominee id, so the result does not depend on row order.

# Wins

Only finished sessions produce winners. Wins accumulates the winner of
every finished tally per member and category, which feeds TopAward,
CoversAll and the hall of fame.
*/
package awards
