package domain

// Medicine is a catalog entry with lot tracking and inventory counters.
// StockQuantity is mutated only through the inventory ledger or a direct
// administrative update; MinStockLevel is a reporting threshold, not a floor.
type Medicine struct {
	ID            string  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	GenericName   string  `db:"generic_name" json:"generic_name"`
	Manufacturer  string  `db:"manufacturer" json:"manufacturer"`
	Category      string  `db:"category" json:"category"`
	Dosage        string  `db:"dosage" json:"dosage"`
	Form          string  `db:"form" json:"form"`
	BatchNumber   string  `db:"batch_number" json:"batch_number"`
	ExpiryDate    string  `db:"expiry_date" json:"expiry_date"`
	PurchasePrice float64 `db:"purchase_price" json:"purchase_price"`
	SellingPrice  float64 `db:"selling_price" json:"selling_price"`
	StockQuantity int64   `db:"stock_quantity" json:"stock_quantity"`
	MinStockLevel int64   `db:"min_stock_level" json:"min_stock_level"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
	UpdatedAt     string  `db:"updated_at" json:"updated_at"`
}

// MedicinePatch carries a partial update; nil fields are left untouched.
type MedicinePatch struct {
	Name          *string  `json:"name,omitempty"`
	GenericName   *string  `json:"generic_name,omitempty"`
	Manufacturer  *string  `json:"manufacturer,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Dosage        *string  `json:"dosage,omitempty"`
	Form          *string  `json:"form,omitempty"`
	BatchNumber   *string  `json:"batch_number,omitempty"`
	ExpiryDate    *string  `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice  *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int64   `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *int64   `json:"min_stock_level,omitempty" validate:"omitempty,gte=0"`
}
