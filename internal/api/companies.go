package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"emabill/m/domain"
)

// Company handlers. A company row is the seller profile whose details are
// copied onto invoices.

type companyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
}

func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	res, err := h.db.Exec(`INSERT INTO companies (name, address, email, phone, gstin, state) VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Address, req.Email, req.Phone, req.GSTIN, req.State)
	if err != nil {
		h.serverError(w, "unable to create company", err)
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	var companies []domain.Company
	if err := h.db.Select(&companies, `SELECT id, name, address, email, phone, gstin, state, created_at FROM companies`); err != nil {
		h.serverError(w, "unable to list companies", err)
		return
	}
	respondJSON(w, http.StatusOK, companies)
}

func (h *Handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = ?)`, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.serverError(w, "unable to load company", err)
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}
	if _, err := h.db.Exec(`UPDATE companies SET name = ?, address = ?, email = ?, phone = ?, gstin = ?, state = ? WHERE id = ?`,
		req.Name, req.Address, req.Email, req.Phone, req.GSTIN, req.State, id); err != nil {
		h.serverError(w, "unable to update company", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
