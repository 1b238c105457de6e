// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package awards

import (
	"sort"
)

// bestCommentLimit caps the comments shown per hall of fame entry.
const bestCommentLimit = 3

// WinTable counts category wins per member: member id → category → wins.
type WinTable map[string]map[string]int

// Wins credits the winner of every tally whose session is finished.
func Wins(tallies []Tally, finished map[string]bool) WinTable {
	w := make(WinTable)
	for _, t := range tallies {
		if !finished[t.SessionID] {
			continue
		}
		top, ok := t.Winner()
		if !ok {
			continue
		}
		if w[top.NomineeID] == nil {
			w[top.NomineeID] = make(map[string]int)
		}
		w[top.NomineeID][t.Category]++
	}
	return w
}

// For returns one member's wins. Never nil.
func (w WinTable) For(memberID string) map[string]int {
	if m := w[memberID]; m != nil {
		return m
	}
	return map[string]int{}
}

// Total sums a member's wins over the given categories.
func Total(wins map[string]int, categories []string) int {
	n := 0
	for _, c := range categories {
		n += wins[c]
	}
	return n
}

// TopAward returns the category a member has won most. Ties go to the
// category listed first. ok is false when the member has no wins.
func TopAward(wins map[string]int, categories []string) (category string, count int, ok bool) {
	for _, c := range categories {
		if wins[c] > count {
			category, count, ok = c, wins[c], true
		}
	}
	return category, count, ok
}

// CoversAll reports whether the member has at least one win in every category.
func CoversAll(wins map[string]int, categories []string) bool {
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		if wins[c] < 1 {
			return false
		}
	}
	return true
}

type FameEntry struct {
	MemberID     string    `json:"member_id"`
	MemberName   string    `json:"member_name"`
	Wins         int       `json:"wins"`
	BestComments []Comment `json:"best_comments"`
}

type FameBoard struct {
	Category string      `json:"category"`
	Entries  []FameEntry `json:"entries"`
}

// HallOfFame ranks all-time winners per category, most wins first, ties
// by member name then id. Each entry keeps up to three comments from the
// tallies the member won.
func HallOfFame(tallies []Tally, finished map[string]bool, categories []string) []FameBoard {
	entries := make(map[string]map[string]*FameEntry, len(categories))
	for _, c := range categories {
		entries[c] = make(map[string]*FameEntry)
	}
	for _, t := range tallies {
		if !finished[t.SessionID] {
			continue
		}
		byMember, known := entries[t.Category]
		if !known {
			continue
		}
		top, ok := t.Winner()
		if !ok {
			continue
		}
		e := byMember[top.NomineeID]
		if e == nil {
			e = &FameEntry{MemberID: top.NomineeID, MemberName: top.NomineeName, BestComments: []Comment{}}
			byMember[top.NomineeID] = e
		}
		e.Wins++
		for _, c := range top.Comments {
			if len(e.BestComments) >= bestCommentLimit {
				break
			}
			e.BestComments = append(e.BestComments, c)
		}
	}

	boards := make([]FameBoard, len(categories))
	for i, c := range categories {
		list := make([]FameEntry, 0, len(entries[c]))
		for _, e := range entries[c] {
			list = append(list, *e)
		}
		sort.Slice(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.MemberName != b.MemberName {
				return a.MemberName < b.MemberName
			}
			return a.MemberID < b.MemberID
		})
		boards[i] = FameBoard{Category: c, Entries: list}
	}
	return boards
}
