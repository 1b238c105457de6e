// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package awards

import (
	"sort"
	"time"

	"github.com/danielhkuo/raid-toto/models"
)

type Comment struct {
	VoterID   string    `json:"voter_id"`
	VoterName string    `json:"voter_name"`
	Text      string    `json:"comment"`
	At        time.Time `json:"at"`
}

// NomineeCount is one nominee's standing within a session+category.
type NomineeCount struct {
	NomineeID   string    `json:"nominee_id"`
	NomineeName string    `json:"nominee_name"`
	Count       int       `json:"count"`
	FirstVoteAt time.Time `json:"first_vote_at"`
	Comments    []Comment `json:"comments,omitempty"`
}

// Tally is the ranked vote count of one category in one session.
type Tally struct {
	SessionID string         `json:"session_id"`
	Category  string         `json:"category"`
	Nominees  []NomineeCount `json:"nominees"`
}

// Winner returns the top-ranked nominee.
func (t Tally) Winner() (NomineeCount, bool) {
	if len(t.Nominees) == 0 {
		return NomineeCount{}, false
	}
	return t.Nominees[0], true
}

type tallyKey struct{ session, category string }

// TallyVotes groups votes by session and category and ranks nominees by
// vote count, descending. Equal counts go to the nominee whose first vote
// was cast earliest, then to the lowest nominee id.
//
// Tallies come back ordered by session id, then by the category order given.
// Categories not listed sort after the known ones, by name.
func TallyVotes(votes []models.Vote, categoryOrder []string) []Tally {
	byKey := make(map[tallyKey]map[string]*NomineeCount)
	var keys []tallyKey
	for _, v := range votes {
		k := tallyKey{v.SessionID, v.Category}
		nominees, ok := byKey[k]
		if !ok {
			nominees = make(map[string]*NomineeCount)
			byKey[k] = nominees
			keys = append(keys, k)
		}
		n, ok := nominees[v.NomineeID]
		if !ok {
			n = &NomineeCount{NomineeID: v.NomineeID, NomineeName: v.NomineeName, FirstVoteAt: v.CreatedAt}
			nominees[v.NomineeID] = n
		}
		n.Count++
		if v.CreatedAt.Before(n.FirstVoteAt) {
			n.FirstVoteAt = v.CreatedAt
		}
		if v.Comment != "" {
			n.Comments = append(n.Comments, Comment{
				VoterID:   v.VoterID,
				VoterName: v.VoterName,
				Text:      v.Comment,
				At:        v.CreatedAt,
			})
		}
	}

	rank := make(map[string]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}
	catLess := func(a, b string) bool {
		ra, oka := rank[a]
		rb, okb := rank[b]
		switch {
		case oka && okb:
			return ra < rb
		case oka != okb:
			return oka
		}
		return a < b
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].session != keys[j].session {
			return keys[i].session < keys[j].session
		}
		return catLess(keys[i].category, keys[j].category)
	})

	tallies := make([]Tally, 0, len(keys))
	for _, k := range keys {
		t := Tally{SessionID: k.session, Category: k.category}
		for _, n := range byKey[k] {
			sort.SliceStable(n.Comments, func(i, j int) bool { return n.Comments[i].At.Before(n.Comments[j].At) })
			t.Nominees = append(t.Nominees, *n)
		}
		rankNominees(t.Nominees)
		tallies = append(tallies, t)
	}
	return tallies
}

func rankNominees(ns []NomineeCount) {
	sort.Slice(ns, func(i, j int) bool {
		a, b := ns[i], ns[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.FirstVoteAt.Equal(b.FirstVoteAt) {
			return a.FirstVoteAt.Before(b.FirstVoteAt)
		}
		return a.NomineeID < b.NomineeID
	})
}

// CategoryResult is the live ranking of one category in a session.
type CategoryResult struct {
	Category string         `json:"category"`
	Nominees []NomineeCount `json:"nominees"`
}

// SessionResults ranks one session's votes, one entry per category in
// canonical order. Categories without votes get an empty ranking.
func SessionResults(sessionID string, votes []models.Vote, categoryOrder []string) []CategoryResult {
	var own []models.Vote
	for _, v := range votes {
		if v.SessionID == sessionID {
			own = append(own, v)
		}
	}
	byCat := make(map[string][]NomineeCount)
	for _, t := range TallyVotes(own, categoryOrder) {
		byCat[t.Category] = t.Nominees
	}
	out := make([]CategoryResult, len(categoryOrder))
	for i, c := range categoryOrder {
		ns := byCat[c]
		if ns == nil {
			ns = []NomineeCount{}
		}
		out[i] = CategoryResult{Category: c, Nominees: ns}
	}
	return out
}
