// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"fmt"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/store"
)

type Service struct {
	repo store.Repository
	cat  *catalog.Catalog
}

func NewService(repo store.Repository, cat *catalog.Catalog) *Service {
	return &Service{repo: repo, cat: cat}
}

// Dashboard loads history and builds one member's dashboard. Returns
// store.ErrNotFound for an unknown member.
func (s *Service) Dashboard(ctx context.Context, memberID string) (Dashboard, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		return Dashboard{}, err
	}
	snap, err := history.Load(ctx, s.repo, s.cat)
	if err != nil {
		return Dashboard{}, err
	}
	grants, err := s.repo.ListGrants(ctx, memberID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load grants: %w", err)
	}
	return Build(s.cat, snap, member, grants), nil
}
