// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/store"
	"github.com/danielhkuo/raid-toto/timeline"
)

// maxNameLength bounds member display names, in characters
const maxNameLength = 30

type MemberHandler struct {
	repo store.Repository
	cat  *catalog.Catalog
}

func NewMemberHandler(repo store.Repository, cat *catalog.Catalog) *MemberHandler {
	return &MemberHandler{repo: repo, cat: cat}
}

// ListMembers handles GET /members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.repo.ListMembers(r.Context())
	if err != nil {
		storeError(w, err, "list members", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, members)
}

// CreateMember handles POST /members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := timeline.Normalize(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is too long")
		return
	}

	m, err := h.repo.CreateMember(r.Context(), name)
	if err != nil {
		storeError(w, err, "create member", "", "")
		return
	}

	slog.Info("member created", "member_id", m.ID, "name", m.Name)
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// GetCatalog handles GET /catalog
func (h *MemberHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.cat)
}
