// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the fixed game tables: round types, weapons, award
categories, reaction emojis, and the achievement rules.

The tables live in catalog.yaml, embedded at build time:

	c := catalog.Default()
	w, ok := c.Weapon("katana")
	ids := c.CategoryIDs() // canonical order: wipe, clown, ghost, mvp, floor, actor

Achievement rules are declarative. Each entry names one counter and a
threshold; the achievements package evaluates them.
*/
package catalog
