package api

import (
	"net/http"
	"strings"
)

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Dashboard(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to compute dashboard stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) searchMedicines(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	medicines, err := h.reports.SearchMedicines(r.Context(), term)
	if err != nil {
		h.respondDomainError(w, err, "unable to search medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}
