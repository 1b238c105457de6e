// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/store"
)

// FeedLimit is how many posts the feed shows.
const FeedLimit = 50

var ErrUnknownEmoji = errors.New("emoji is not an allowed reaction")

type Service struct {
	repo store.Repository
	cat  *catalog.Catalog
	loc  *time.Location
	now  func() time.Time
}

// NewService returns a timeline service that groups posts by date in loc.
func NewService(repo store.Repository, cat *catalog.Catalog, loc *time.Location) *Service {
	return &Service{repo: repo, cat: cat, loc: loc, now: time.Now}
}

// Feed returns the latest posts with their reactions.
func (s *Service) Feed(ctx context.Context) ([]Entry, error) {
	posts, err := s.repo.ListPosts(ctx, FeedLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	reactions, err := s.repo.ListReactions(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Feed(posts, reactions, s.cat.ReactionEmojis, s.now(), s.loc), nil
}

// Post validates and stores a message. Validation errors wrap ErrInvalid
// and nothing is written.
func (s *Service) Post(ctx context.Context, memberID, message string) (models.Post, error) {
	text, err := ValidateMessage(message)
	if err != nil {
		return models.Post{}, err
	}
	if memberID == "" {
		return models.Post{}, fmt.Errorf("%w: member_id is required", ErrInvalid)
	}
	if err := s.checkMember(ctx, memberID); err != nil {
		return models.Post{}, err
	}
	return s.repo.CreatePost(ctx, memberID, text)
}

func (s *Service) Delete(ctx context.Context, postID string) error {
	return s.repo.DeletePost(ctx, postID)
}

// Toggle flips a member's reaction on a post and reports whether it is now
// present.
func (s *Service) Toggle(ctx context.Context, postID, memberID, emoji string) (bool, error) {
	if !s.cat.ReactionAllowed(emoji) {
		return false, ErrUnknownEmoji
	}
	if memberID == "" {
		return false, fmt.Errorf("%w: member_id is required", ErrInvalid)
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return false, err
	}
	if err := s.checkMember(ctx, memberID); err != nil {
		return false, err
	}
	return s.repo.ToggleReaction(ctx, postID, memberID, emoji)
}

// checkMember reports an unknown member as a validation error.
func (s *Service) checkMember(ctx context.Context, memberID string) error {
	_, err := s.repo.GetMember(ctx, memberID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: unknown member", ErrInvalid)
	}
	return err
}
