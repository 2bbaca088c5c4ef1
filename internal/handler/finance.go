package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
)

func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var in models.LoanCreate
	if !h.decode(w, r, &in) {
		return
	}
	loan, err := h.svc.Finance.CreateLoan(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	loan, err := h.svc.Finance.GetLoan(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *Handler) ListOverdueLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.Finance.ListOverdueLoans(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *Handler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.LoanUpdate
	if !h.decode(w, r, &patch) {
		return
	}
	loan, err := h.svc.Finance.UpdateLoan(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.Finance.DeleteLoan(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !deleted {
		h.writeError(w, r, fmt.Errorf("loan %d: %w", id, apperr.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var in models.DepositCreate
	if !h.decode(w, r, &in) {
		return
	}
	deposit, err := h.svc.Finance.CreateDeposit(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deposit)
}

func (h *Handler) GetDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deposit, err := h.svc.Finance.GetDeposit(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *Handler) UpdateDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.DepositUpdate
	if !h.decode(w, r, &patch) {
		return
	}
	deposit, err := h.svc.Finance.UpdateDeposit(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *Handler) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.Finance.DeleteDeposit(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !deleted {
		h.writeError(w, r, fmt.Errorf("deposit %d: %w", id, apperr.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
