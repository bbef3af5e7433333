package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"emabill/m/domain"
)

// User handlers. These are the buyer records referenced from sales.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	var users []domain.User
	if err := h.db.Select(&users, `SELECT id, user_name, email, created_at FROM users ORDER BY created_at DESC, id DESC`); err != nil {
		h.serverError(w, "unable to list users", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var user domain.User
	err = h.db.Get(&user, `SELECT id, user_name, email, created_at FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, "unable to load user", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
