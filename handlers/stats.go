// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/stats"
	"github.com/danielhkuo/raid-toto/store"
)

type StatsHandler struct {
	repo  store.Repository
	stats *stats.Service
}

func NewStatsHandler(repo store.Repository, svc *stats.Service) *StatsHandler {
	return &StatsHandler{repo: repo, stats: svc}
}

// GetMemberStats handles GET /members/{id}/stats
func (h *StatsHandler) GetMemberStats(w http.ResponseWriter, r *http.Request) {
	dash, err := h.stats.Dashboard(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "member stats", "Member not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, dash)
}

// ListAchievements handles GET /achievements?member_id=ID
// Grants are newest first; without member_id every member's are listed.
func (h *StatsHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	grants, err := h.repo.ListGrants(r.Context(), r.URL.Query().Get("member_id"))
	if err != nil {
		storeError(w, err, "list grants", "", "")
		return
	}
	if grants == nil {
		grants = []models.Grant{}
	}
	middleware.JSONResponse(w, http.StatusOK, grants)
}
