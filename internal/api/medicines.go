package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pharmatrack/p/internal/domain"
)

type createMedicineRequest struct {
	Name          string  `json:"name" validate:"required"`
	GenericName   string  `json:"generic_name" validate:"required"`
	Manufacturer  string  `json:"manufacturer" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Dosage        string  `json:"dosage" validate:"required"`
	Form          string  `json:"form" validate:"required"`
	BatchNumber   string  `json:"batch_number" validate:"required"`
	ExpiryDate    string  `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	StockQuantity int64   `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int64   `json:"min_stock_level" validate:"gte=0"`
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req createMedicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	medicine := domain.Medicine{
		Name:          req.Name,
		GenericName:   req.GenericName,
		Manufacturer:  req.Manufacturer,
		Category:      req.Category,
		Dosage:        req.Dosage,
		Form:          req.Form,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    req.ExpiryDate,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
	}
	if err := h.medicines.Insert(r.Context(), &medicine); err != nil {
		h.respondDomainError(w, err, "unable to create medicine")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.medicines.List(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to list medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	medicine, err := h.medicines.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Medicine not found")
		return
	}
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch medicine")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.MedicinePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.medicines.Update(r.Context(), id, patch); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Medicine not found")
			return
		}
		h.respondDomainError(w, err, "unable to update medicine")
		return
	}
	medicine, err := h.medicines.Get(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch medicine")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	err := h.medicines.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Medicine not found")
		return
	}
	if err != nil {
		h.respondDomainError(w, err, "unable to delete medicine")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Medicine deleted successfully"})
}

func (h *Handler) lowStockMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.reports.LowStock(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch low-stock medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) expiredMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.reports.Expired(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch expired medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) expiringMedicines(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	medicines, err := h.reports.ExpiringWithin(r.Context(), days)
	if err != nil {
		h.respondDomainError(w, err, "unable to fetch expiring medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}
