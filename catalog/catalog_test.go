// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/raid-toto/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"wipe", "clown", "ghost", "mvp", "floor", "actor"}, c.CategoryIDs())
	assert.Len(t, c.Weapons, 21)
	assert.Len(t, c.RoundTypes, len(models.RoundTypes))

	w, ok := c.Weapon("katana")
	require.True(t, ok)
	assert.Equal(t, "melee", w.Role)

	_, ok = c.Weapon("Katana")
	assert.False(t, ok, "weapon ids are case-sensitive")

	rt, ok := c.RoundType(models.RoundTotalDeaths)
	require.True(t, ok)
	assert.NotEmpty(t, rt.Name)

	assert.True(t, c.ReactionAllowed("🔥"))
	assert.False(t, c.ReactionAllowed("🙂"))
}

func TestDefaultAchievementTable(t *testing.T) {
	c := Default()

	want := map[string]struct {
		counter   string
		category  string
		threshold int
	}{
		"toto_first":         {CounterBetsPlaced, "", 1},
		"toto_10":            {CounterBetsPlaced, "", 10},
		"toto_20":            {CounterBetsPlaced, "", 20},
		"toto_hit_first":     {CounterCorrectBets, "", 1},
		"toto_hit_5":         {CounterCorrectBets, "", 5},
		"toto_hit_10":        {CounterCorrectBets, "", 10},
		"toto_hit_3_streak":  {CounterBestHitStreak, "", 3},
		"toto_miss_5_streak": {CounterBestMissStreak, "", 5},
		"vote_first":         {CounterVoteSessions, "", 1},
		"vote_10":            {CounterVoteSessions, "", 10},
		"wipe_3":             {CounterCategoryWins, "wipe", 3},
		"wipe_5":             {CounterCategoryWins, "wipe", 5},
		"clown_3":            {CounterCategoryWins, "clown", 3},
		"clown_5":            {CounterCategoryWins, "clown", 5},
		"ghost_3":            {CounterCategoryWins, "ghost", 3},
		"mvp_3":              {CounterCategoryWins, "mvp", 3},
		"mvp_5":              {CounterCategoryWins, "mvp", 5},
		"floor_3":            {CounterCategoryWins, "floor", 3},
		"actor_3":            {CounterCategoryWins, "actor", 3},
		"all_category":       {CounterAllCategories, "", 1},
	}

	require.Len(t, c.Achievements, len(want))
	for key, w := range want {
		a, ok := c.Achievement(key)
		require.True(t, ok, key)
		assert.Equal(t, w.counter, a.Counter, key)
		assert.Equal(t, w.category, a.Category, key)
		assert.Equal(t, w.threshold, a.Threshold, key)
	}
}

func TestHallGrouping(t *testing.T) {
	c := Default()

	var fame []string
	for _, cat := range c.CategoriesInHall(HallFame) {
		fame = append(fame, cat.ID)
	}
	assert.Equal(t, []string{"ghost", "mvp"}, fame)
	assert.Len(t, c.CategoriesInHall(HallShame), 4)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "award_categories: [\n"},
		{"no categories", "weapons: []\n"},
		{"unknown counter", `
award_categories: [{id: mvp, hall: fame}]
achievements: [{key: k, counter: nope, threshold: 1}]
`},
		{"unknown category", `
award_categories: [{id: mvp, hall: fame}]
achievements: [{key: k, counter: category_wins, category: wipe, threshold: 3}]
`},
		{"zero threshold", `
award_categories: [{id: mvp, hall: fame}]
achievements: [{key: k, counter: bets_placed, threshold: 0}]
`},
		{"duplicate key", `
award_categories: [{id: mvp, hall: fame}]
achievements:
  - {key: k, counter: bets_placed, threshold: 1}
  - {key: k, counter: bets_placed, threshold: 2}
`},
		{"bad hall", "award_categories: [{id: mvp, hall: lobby}]\n"},
		{"unknown round type", `
award_categories: [{id: mvp, hall: fame}]
round_types: [{id: boss_hp}]
`},
		{"weapon with unknown role", `
award_categories: [{id: mvp, hall: fame}]
roles: {tank: T}
weapons: [{id: sword, role: healer}]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
