// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/timeline"
)

type TimelineHandler struct {
	timeline *timeline.Service
}

func NewTimelineHandler(svc *timeline.Service) *TimelineHandler {
	return &TimelineHandler{timeline: svc}
}

// ListPosts handles GET /timeline
func (h *TimelineHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.timeline.Feed(r.Context())
	if err != nil {
		storeError(w, err, "timeline feed", "", "")
		return
	}
	if entries == nil {
		entries = []timeline.Entry{}
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// CreatePost handles POST /timeline
func (h *TimelineHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.timeline.Post(r.Context(), req.MemberID, req.Message)
	if errors.Is(err, timeline.ErrInvalid) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		storeError(w, err, "create post", "", "")
		return
	}

	slog.Info("post created", "post_id", post.ID, "member_id", post.MemberID)
	middleware.JSONResponse(w, http.StatusCreated, post)
}

// DeletePost handles DELETE /timeline/{id}
func (h *TimelineHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.timeline.Delete(r.Context(), id); err != nil {
		storeError(w, err, "delete post", "Post not found", "")
		return
	}

	slog.Info("post deleted", "post_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleReaction handles POST /timeline/{id}/reactions
func (h *TimelineHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleReactionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	added, err := h.timeline.Toggle(r.Context(), r.PathValue("id"), req.MemberID, req.Emoji)
	switch {
	case errors.Is(err, timeline.ErrUnknownEmoji), errors.Is(err, timeline.ErrInvalid):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		storeError(w, err, "toggle reaction", "Post not found", "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleReactionResponse{Added: added})
}
