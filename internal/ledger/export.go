package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"PriceDesk/pkg/kit"
)

var csvHeader = []string{
	"product_name",
	"sku",
	"your_price",
	"competitor",
	"competitor_price",
	"price_difference",
	"date_added",
}

// WriteCSV serializes the records in ledger order, header row first,
// prices as 2-dp decimals.
func WriteCSV(w io.Writer, recs []PriceRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{
			rec.ProductName,
			rec.SKU,
			FormatCents(rec.YourPriceCents),
			rec.Competitor,
			FormatCents(rec.CompetitorPriceCents),
			FormatCents(rec.PriceDifferenceCents),
			rec.DateAdded.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("price_comparison_%s.csv", now.UTC().Format("20060102"))
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("export failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(time.Now())))

	if err := WriteCSV(w, recs); err != nil && s.Log != nil {
		s.Log.Error("write csv failed", zap.Error(err))
	}
}
