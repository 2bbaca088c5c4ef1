package handler

import (
	"net/http"
)

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.Catalog.ListJobs(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *Handler) ListEducationLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.svc.Catalog.ListEducationLevels(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

func (h *Handler) ListMaritalStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.svc.Catalog.ListMaritalStatuses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (h *Handler) ListDepositTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Catalog.ListDepositTypes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// KeyRate returns the central bank key rate with the bank margin applied
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.Catalog.KeyRate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}
