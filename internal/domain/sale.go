package domain

// SaleItem is one line of a sale. MedicineName and the prices are a
// denormalized snapshot taken at sale time, so the sale stays readable after
// the medicine record changes or is deleted.
type SaleItem struct {
	MedicineID   string  `db:"medicine_id" json:"medicine_id"`
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	Quantity     int64   `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	TotalPrice   float64 `db:"total_price" json:"total_price"`
}

// Sale is an append-only financial record. There is no update or delete path
// for sales anywhere in the system.
type Sale struct {
	ID              string     `db:"id" json:"id"`
	CustomerID      *string    `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName    *string    `db:"customer_name" json:"customer_name,omitempty"`
	Items           []SaleItem `json:"items"`
	Subtotal        float64    `db:"subtotal" json:"subtotal"`
	DiscountPercent float64    `db:"discount_percent" json:"discount_percent"`
	DiscountAmount  float64    `db:"discount_amount" json:"discount_amount"`
	TaxPercent      float64    `db:"tax_percent" json:"tax_percent"`
	TaxAmount       float64    `db:"tax_amount" json:"tax_amount"`
	TotalAmount     float64    `db:"total_amount" json:"total_amount"`
	PaymentMethod   string     `db:"payment_method" json:"payment_method"`
	SaleDate        string     `db:"sale_date" json:"sale_date"`
}
