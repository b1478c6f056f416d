package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pharmatrack/p/internal/reports"
	"pharmatrack/p/internal/sales"
	"pharmatrack/p/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	log       *zap.Logger
	medicines *store.MedicineStore
	customers *store.CustomerStore
	suppliers *store.SupplierStore
	sales     *store.SaleStore
	processor *sales.Processor
	reports   *reports.Service
	validate  *validator.Validate
}

// New constructs a Handler.
func New(log *zap.Logger, medicines *store.MedicineStore, customers *store.CustomerStore,
	suppliers *store.SupplierStore, saleStore *store.SaleStore,
	processor *sales.Processor, reportSvc *reports.Service) *Handler {
	return &Handler{
		log:       log,
		medicines: medicines,
		customers: customers,
		suppliers: suppliers,
		sales:     saleStore,
		processor: processor,
		reports:   reportSvc,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/medicines", func(r chi.Router) {
			r.Post("/", h.createMedicine)
			r.Get("/", h.listMedicines)
			r.Get("/low-stock", h.lowStockMedicines)
			r.Get("/expired", h.expiredMedicines)
			r.Get("/expiring", h.expiringMedicines)
			r.Get("/{id}", h.getMedicine)
			r.Put("/{id}", h.updateMedicine)
			r.Delete("/{id}", h.deleteMedicine)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.createCustomer)
			r.Get("/", h.listCustomers)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", h.createSupplier)
			r.Get("/", h.listSuppliers)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.createSale)
			r.Get("/", h.listSales)
			r.Get("/today", h.todaySales)
		})

		r.Get("/dashboard/stats", h.dashboardStats)
		r.Get("/search/medicines", h.searchMedicines)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
