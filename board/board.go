// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"github.com/danielhkuo/raid-toto/models"
)

// State is the toto board: the known rounds, which one is selected, and
// the bets loaded for it. Transitions return a new State and never mutate
// the receiver's slices.
type State struct {
	Rounds          []models.Round `json:"rounds"` // newest first
	SelectedRoundID string         `json:"selected_round_id,omitempty"`
	Bets            []models.Bet   `json:"bets"`
}

// ReceiveRounds replaces the round list. The selection is kept if the
// selected round is still present; otherwise the newest round is selected
// and the bets are cleared.
func (s State) ReceiveRounds(rounds []models.Round) State {
	next := State{
		Rounds:          append([]models.Round(nil), rounds...),
		SelectedRoundID: s.SelectedRoundID,
		Bets:            s.Bets,
	}
	if _, ok := next.find(s.SelectedRoundID); ok {
		return next
	}
	next.SelectedRoundID = ""
	next.Bets = nil
	if len(next.Rounds) > 0 {
		next.SelectedRoundID = next.Rounds[0].ID
	}
	return next
}

// SelectRound selects a known round. Selecting a different round clears
// the bets; an unknown id leaves the state unchanged.
func (s State) SelectRound(id string) State {
	if _, ok := s.find(id); !ok || id == s.SelectedRoundID {
		return s
	}
	s.SelectedRoundID = id
	s.Bets = nil
	return s
}

// ReceiveBets stores bets fetched for roundID. Bets for a round that is no
// longer selected are stale and dropped.
func (s State) ReceiveBets(roundID string, bets []models.Bet) State {
	if roundID != s.SelectedRoundID {
		return s
	}
	s.Bets = append([]models.Bet(nil), bets...)
	return s
}

// ReplaceBet applies one placed bet to the selected round, replacing the
// member's previous bet if there was one.
func (s State) ReplaceBet(bet models.Bet) State {
	if bet.RoundID != s.SelectedRoundID {
		return s
	}
	bets := make([]models.Bet, 0, len(s.Bets)+1)
	replaced := false
	for _, b := range s.Bets {
		if b.MemberID == bet.MemberID {
			bets = append(bets, bet)
			replaced = true
			continue
		}
		bets = append(bets, b)
	}
	if !replaced {
		bets = append(bets, bet)
	}
	s.Bets = bets
	return s
}

// Selected returns the selected round.
func (s State) Selected() (models.Round, bool) {
	return s.find(s.SelectedRoundID)
}

func (s State) find(id string) (models.Round, bool) {
	if id == "" {
		return models.Round{}, false
	}
	for _, r := range s.Rounds {
		if r.ID == id {
			return r, true
		}
	}
	return models.Round{}, false
}
