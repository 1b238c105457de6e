// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settle

import (
	"sort"

	"github.com/danielhkuo/raid-toto/models"
)

// Settlement is the judged outcome of one round.
type Settlement struct {
	RoundID   string
	Evaluated bool
	Outcomes  []models.BetOutcome
	Winners   []string // member ids, in bet order
}

// Round judges every bet of a finished round. Rounds without a result are
// returned unevaluated with every bet marked incorrect.
//
// Exact rounds (weapon, first/last death) need the bet to equal the result.
// Numeric rounds (wipe count, total deaths) are won by the closest guess;
// when several guesses tie on distance, guesses at or under the result win,
// and only if there are none does the whole tied set win.
func Round(round models.Round, bets []models.Bet) Settlement {
	s := Settlement{
		RoundID:  round.ID,
		Outcomes: make([]models.BetOutcome, len(bets)),
	}
	for i, b := range bets {
		s.Outcomes[i] = models.BetOutcome{BetID: b.ID, MemberID: b.MemberID, Value: b.Value}
	}
	if !round.Settled() {
		return s
	}

	actual, err := models.DecodeBetValue(round.Type, *round.ActualResult)
	if err != nil {
		return s
	}
	s.Evaluated = true

	var winners []int
	if round.Type.Numeric() {
		winners = closest(round.Type, actual.Count(), bets)
	} else {
		for i, b := range bets {
			v, err := models.DecodeBetValue(round.Type, b.Value)
			if err == nil && v.Equal(actual) {
				winners = append(winners, i)
			}
		}
	}

	for _, i := range winners {
		s.Outcomes[i].Correct = true
		s.Winners = append(s.Winners, bets[i].MemberID)
	}
	return s
}

// closest returns the indexes of the winning numeric bets.
func closest(t models.RoundType, actual int, bets []models.Bet) []int {
	best := -1
	var tied []int
	for i, b := range bets {
		v, err := models.DecodeBetValue(t, b.Value)
		if err != nil {
			continue
		}
		d := v.Count() - actual
		if d < 0 {
			d = -d
		}
		switch {
		case best < 0 || d < best:
			best = d
			tied = []int{i}
		case d == best:
			tied = append(tied, i)
		}
	}
	if len(tied) <= 1 {
		return tied
	}

	var under []int
	for _, i := range tied {
		v, _ := models.DecodeBetValue(t, bets[i].Value)
		if v.Count() <= actual {
			under = append(under, i)
		}
	}
	if len(under) > 0 {
		return under
	}
	return tied
}

// Pick is one of a member's bets together with its round and verdict.
type Pick struct {
	Round   models.Round
	Bet     models.Bet
	Correct bool
}

// Ledger holds the settlement of every round in a snapshot so a bet's
// verdict can be looked up without re-running the closest-guess rule.
type Ledger struct {
	rounds      map[string]models.Round
	settlements map[string]Settlement
	correct     map[string]bool
	bets        []models.Bet
}

// All settles every round against the given bets. Bets whose round is
// missing from rounds are kept but never correct.
func All(rounds []models.Round, bets []models.Bet) *Ledger {
	l := &Ledger{
		rounds:      make(map[string]models.Round, len(rounds)),
		settlements: make(map[string]Settlement, len(rounds)),
		correct:     make(map[string]bool),
		bets:        bets,
	}
	byRound := make(map[string][]models.Bet)
	for _, b := range bets {
		byRound[b.RoundID] = append(byRound[b.RoundID], b)
	}
	for _, r := range rounds {
		l.rounds[r.ID] = r
		s := Round(r, byRound[r.ID])
		l.settlements[r.ID] = s
		for _, o := range s.Outcomes {
			if o.Correct {
				l.correct[o.BetID] = true
			}
		}
	}
	return l
}

func (l *Ledger) Correct(betID string) bool { return l.correct[betID] }

func (l *Ledger) Settlement(roundID string) (Settlement, bool) {
	s, ok := l.settlements[roundID]
	return s, ok
}

func (l *Ledger) Round(roundID string) (models.Round, bool) {
	r, ok := l.rounds[roundID]
	return r, ok
}

// MemberBets returns every bet a member placed, whatever the round status.
func (l *Ledger) MemberBets(memberID string) []models.Bet {
	var out []models.Bet
	for _, b := range l.bets {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	return out
}

// History returns a member's bets on finished rounds ordered by round
// creation time, oldest first, ties broken by round id.
func (l *Ledger) History(memberID string) []Pick {
	var picks []Pick
	for _, b := range l.bets {
		if b.MemberID != memberID {
			continue
		}
		r, ok := l.rounds[b.RoundID]
		if !ok || r.Status != models.RoundFinished {
			continue
		}
		picks = append(picks, Pick{Round: r, Bet: b, Correct: l.correct[b.ID]})
	}
	sort.SliceStable(picks, func(i, j int) bool {
		a, b := picks[i].Round, picks[j].Round
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return picks
}
