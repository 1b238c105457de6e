// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package achievements evaluates the catalog's achievement rules against a
// member's history and records grants. A grant is permanent; re-running an
// evaluation only reports keys the store had not seen before.
package achievements
