// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BetValueKind tags which variant a BetValue holds.
type BetValueKind int

const (
	KindInvalid BetValueKind = iota
	KindWeapon
	KindMember
	KindCount
)

var ErrInvalidBetValue = errors.New("invalid bet value")

// BetValue is a decoded bet or result: a weapon id, a member id, or a count,
// depending on the round type. The zero value is KindInvalid.
type BetValue struct {
	kind  BetValueKind
	id    string
	count int
}

func WeaponValue(id string) BetValue { return BetValue{kind: KindWeapon, id: id} }
func MemberValue(id string) BetValue { return BetValue{kind: KindMember, id: id} }
func CountValue(n int) BetValue      { return BetValue{kind: KindCount, count: n} }

func (v BetValue) Kind() BetValueKind { return v.kind }
func (v BetValue) Valid() bool        { return v.kind != KindInvalid }

// ID returns the weapon or member id. Empty for counts.
func (v BetValue) ID() string { return v.id }

// Count returns the guessed count. Zero for id variants.
func (v BetValue) Count() int { return v.count }

// Encode renders the value back to its stored text form.
func (v BetValue) Encode() string {
	switch v.kind {
	case KindCount:
		return strconv.Itoa(v.count)
	case KindWeapon, KindMember:
		return v.id
	}
	return ""
}

// Equal compares two values of the same kind. Ids compare case-sensitively.
func (v BetValue) Equal(o BetValue) bool {
	if !v.Valid() || v.kind != o.kind {
		return false
	}
	if v.kind == KindCount {
		return v.count == o.count
	}
	return v.id == o.id
}

// DecodeBetValue parses raw stored text according to the round type.
// Counts accept integer text or decimal text with no fractional part ("5", "5.0").
// Ids are kept verbatim.
func DecodeBetValue(t RoundType, raw string) (BetValue, error) {
	switch t {
	case RoundWeapon:
		if raw == "" {
			return BetValue{}, fmt.Errorf("%w: empty weapon", ErrInvalidBetValue)
		}
		return WeaponValue(raw), nil
	case RoundFirstDeath, RoundLastDeath:
		if raw == "" {
			return BetValue{}, fmt.Errorf("%w: empty member", ErrInvalidBetValue)
		}
		return MemberValue(raw), nil
	case RoundWipeCount, RoundTotalDeaths:
		n, err := parseCount(raw)
		if err != nil {
			return BetValue{}, err
		}
		return CountValue(n), nil
	}
	return BetValue{}, fmt.Errorf("%w: unknown round type %q", ErrInvalidBetValue, t)
}

func parseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: negative count %q", ErrInvalidBetValue, raw)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: not a count %q", ErrInvalidBetValue, raw)
	}
	return int(f), nil
}
