// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "testing"

func TestRebind(t *testing.T) {
	query := `SELECT id FROM toto_bets WHERE round_id = ? AND member_id IN (?, ?)`

	sqlite := &SQLStore{}
	if got := sqlite.rebind(query); got != query {
		t.Errorf("SQLite query changed: %s", got)
	}

	pg := &SQLStore{postgres: true}
	want := `SELECT id FROM toto_bets WHERE round_id = $1 AND member_id IN ($2, $3)`
	if got := pg.rebind(query); got != want {
		t.Errorf("rebind = %s, want %s", got, want)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(3); got != "?, ?, ?" {
		t.Errorf("placeholders(3) = %q", got)
	}
	if got := placeholders(1); got != "?" {
		t.Errorf("placeholders(1) = %q", got)
	}
}
