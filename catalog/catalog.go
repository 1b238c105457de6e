// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/raid-toto/models"
)

// Achievement counters. Each catalog achievement reads exactly one.
const (
	CounterBetsPlaced     = "bets_placed"
	CounterCorrectBets    = "correct_bets"
	CounterBestHitStreak  = "best_hit_streak"
	CounterBestMissStreak = "best_miss_streak"
	CounterVoteSessions   = "vote_sessions"
	CounterCategoryWins   = "category_wins"
	CounterAllCategories  = "all_categories"
)

// Hall groups for award categories
const (
	HallFame  = "fame"
	HallShame = "shame"
)

//go:embed catalog.yaml
var defaultYAML []byte

type RoundType struct {
	ID    models.RoundType `yaml:"id" json:"id"`
	Emoji string           `yaml:"emoji" json:"emoji"`
	Name  string           `yaml:"name" json:"name"`
	Desc  string           `yaml:"desc" json:"desc"`
}

type Weapon struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Job  string `yaml:"job" json:"job"`
	Role string `yaml:"role" json:"role"`
}

type Category struct {
	ID    string `yaml:"id" json:"id"`
	Emoji string `yaml:"emoji" json:"emoji"`
	Name  string `yaml:"name" json:"name"`
	Desc  string `yaml:"desc" json:"desc"`
	Hall  string `yaml:"hall" json:"hall"`
}

// Achievement is one declarative rule: the member earns Key once the
// named counter reaches Threshold.
type Achievement struct {
	Key       string `yaml:"key" json:"key"`
	Emoji     string `yaml:"emoji" json:"emoji"`
	Name      string `yaml:"name" json:"name"`
	Desc      string `yaml:"desc" json:"desc"`
	Hidden    bool   `yaml:"hidden" json:"hidden"`
	Counter   string `yaml:"counter" json:"counter"`
	Category  string `yaml:"category,omitempty" json:"category,omitempty"`
	Threshold int    `yaml:"threshold" json:"threshold"`
}

type Catalog struct {
	RoundTypes      []RoundType       `yaml:"round_types" json:"round_types"`
	Roles           map[string]string `yaml:"roles" json:"roles"`
	Weapons         []Weapon          `yaml:"weapons" json:"weapons"`
	AwardCategories []Category        `yaml:"award_categories" json:"award_categories"`
	ReactionEmojis  []string          `yaml:"reaction_emojis" json:"reaction_emojis"`
	Achievements    []Achievement     `yaml:"achievements" json:"achievements"`

	weapons      map[string]Weapon
	categories   map[string]Category
	roundTypes   map[models.RoundType]RoundType
	achievements map[string]Achievement
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultYAML)
})

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which can only happen at build time.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.weapons = make(map[string]Weapon, len(c.Weapons))
	for _, w := range c.Weapons {
		if _, dup := c.weapons[w.ID]; dup {
			return fmt.Errorf("duplicate weapon %q", w.ID)
		}
		if _, ok := c.Roles[w.Role]; !ok {
			return fmt.Errorf("weapon %q has unknown role %q", w.ID, w.Role)
		}
		c.weapons[w.ID] = w
	}

	c.categories = make(map[string]Category, len(c.AwardCategories))
	for _, cat := range c.AwardCategories {
		if _, dup := c.categories[cat.ID]; dup {
			return fmt.Errorf("duplicate award category %q", cat.ID)
		}
		if cat.Hall != HallFame && cat.Hall != HallShame {
			return fmt.Errorf("award category %q has unknown hall %q", cat.ID, cat.Hall)
		}
		c.categories[cat.ID] = cat
	}
	if len(c.categories) == 0 {
		return fmt.Errorf("catalog declares no award categories")
	}

	c.roundTypes = make(map[models.RoundType]RoundType, len(c.RoundTypes))
	for _, rt := range c.RoundTypes {
		if !rt.ID.Valid() {
			return fmt.Errorf("unknown round type %q", rt.ID)
		}
		c.roundTypes[rt.ID] = rt
	}

	c.achievements = make(map[string]Achievement, len(c.Achievements))
	for _, a := range c.Achievements {
		if _, dup := c.achievements[a.Key]; dup {
			return fmt.Errorf("duplicate achievement %q", a.Key)
		}
		switch a.Counter {
		case CounterBetsPlaced, CounterCorrectBets, CounterBestHitStreak,
			CounterBestMissStreak, CounterVoteSessions, CounterAllCategories:
		case CounterCategoryWins:
			if _, ok := c.categories[a.Category]; !ok {
				return fmt.Errorf("achievement %q references unknown category %q", a.Key, a.Category)
			}
		default:
			return fmt.Errorf("achievement %q has unknown counter %q", a.Key, a.Counter)
		}
		if a.Threshold < 1 {
			return fmt.Errorf("achievement %q needs a positive threshold", a.Key)
		}
		c.achievements[a.Key] = a
	}
	return nil
}

func (c *Catalog) Weapon(id string) (Weapon, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

func (c *Catalog) Category(id string) (Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

func (c *Catalog) RoundType(t models.RoundType) (RoundType, bool) {
	rt, ok := c.roundTypes[t]
	return rt, ok
}

func (c *Catalog) Achievement(key string) (Achievement, bool) {
	a, ok := c.achievements[key]
	return a, ok
}

// CategoryIDs returns award category ids in canonical order.
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, len(c.AwardCategories))
	for i, cat := range c.AwardCategories {
		ids[i] = cat.ID
	}
	return ids
}

// CategoriesInHall returns the categories of one hall, canonical order kept.
func (c *Catalog) CategoriesInHall(hall string) []Category {
	var out []Category
	for _, cat := range c.AwardCategories {
		if cat.Hall == hall {
			out = append(out, cat)
		}
	}
	return out
}

func (c *Catalog) ReactionAllowed(emoji string) bool {
	for _, e := range c.ReactionEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}
