package api

import (
	"errors"
	"net/http"

	"pharmatrack/p/internal/sales"
)

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req sales.CreateSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.processor.ProcessSale(r.Context(), req)
	if err != nil {
		var notFound *sales.MedicineNotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound, notFound.Error())
			return
		}
		h.respondDomainError(w, err, "unable to process sale")
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	saleList, err := h.sales.List(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to list sales")
		return
	}
	respondJSON(w, http.StatusOK, saleList)
}

func (h *Handler) todaySales(w http.ResponseWriter, r *http.Request) {
	saleList, err := h.reports.TodaySales(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch today's sales")
		return
	}
	respondJSON(w, http.StatusOK, saleList)
}
