package seed

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pharmatrack/p/internal/domain"
	"pharmatrack/p/internal/store"
)

// catalog CSV columns, after the header row:
// name, generic_name, manufacturer, category, dosage, form, batch_number,
// expiry_date, purchase_price, selling_price, stock_quantity, min_stock_level
const catalogColumns = 12

// LoadCatalog ingests a medicine catalog CSV, skipping malformed rows.
// A missing file is logged and ignored so a fresh checkout still boots.
func LoadCatalog(ctx context.Context, medicines *store.MedicineStore, csvPath string, log *zap.Logger) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Warn("unable to open medicine catalog", zap.String("path", csvPath), zap.Error(err))
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Warn("unable to read catalog header", zap.Error(err))
		return
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("unable to read catalog row", zap.Error(err))
			continue
		}
		if len(record) < catalogColumns {
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		purchasePrice, err1 := strconv.ParseFloat(strings.TrimSpace(record[8]), 64)
		sellingPrice, err2 := strconv.ParseFloat(strings.TrimSpace(record[9]), 64)
		stockQuantity, err3 := strconv.ParseInt(strings.TrimSpace(record[10]), 10, 64)
		minStockLevel, err4 := strconv.ParseInt(strings.TrimSpace(record[11]), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			log.Warn("skipping catalog row with bad numbers", zap.String("name", name))
			continue
		}

		medicine := domain.Medicine{
			Name:          name,
			GenericName:   strings.TrimSpace(record[1]),
			Manufacturer:  strings.TrimSpace(record[2]),
			Category:      strings.TrimSpace(record[3]),
			Dosage:        strings.TrimSpace(record[4]),
			Form:          strings.TrimSpace(record[5]),
			BatchNumber:   strings.TrimSpace(record[6]),
			ExpiryDate:    strings.TrimSpace(record[7]),
			PurchasePrice: purchasePrice,
			SellingPrice:  sellingPrice,
			StockQuantity: stockQuantity,
			MinStockLevel: minStockLevel,
		}
		if err := medicines.Insert(ctx, &medicine); err != nil {
			log.Warn("unable to insert catalog medicine", zap.String("name", name), zap.Error(err))
			continue
		}
		rows++
	}

	log.Info("seeded medicine catalog", zap.Int("rows", rows))
}
