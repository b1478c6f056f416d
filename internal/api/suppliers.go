package api

import (
	"net/http"

	"pharmatrack/p/internal/domain"
)

type createSupplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier := domain.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}
	if err := h.suppliers.Insert(r.Context(), &supplier); err != nil {
		h.respondDomainError(w, err, "unable to create supplier")
		return
	}
	respondJSON(w, http.StatusOK, supplier)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		h.respondDomainError(w, err, "unable to list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}
