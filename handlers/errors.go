// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/store"
)

// storeError maps a repository error to a response. notFound and conflict
// are the user-facing messages for those cases; anything else is logged
// and reported as a 500.
func storeError(w http.ResponseWriter, err error, op, notFound, conflict string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, conflict)
	default:
		slog.Error("store call failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// validDate reports whether s is a YYYY-MM-DD date
func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// queryLimit reads a positive ?limit=, falling back to def. max caps it.
func queryLimit(r *http.Request, def, max int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, max), true
}

// queryList splits a comma-separated query value, dropping empty items.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, s := range strings.Split(r.URL.Query().Get(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
