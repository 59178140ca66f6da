package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"PriceDesk/pkg/kit"
)

const maxAddBody = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/records", s.add)
	r.Get("/records", s.list)
	r.Get("/records/summary", s.summary)
	r.Get("/records/export.csv", s.exportCSV)

	return r
}

type addReq struct {
	ProductName     string  `json:"product_name"`
	SKU             string  `json:"sku"`
	YourPrice       float64 `json:"your_price"`
	Competitor      string  `json:"competitor"`
	CompetitorPrice float64 `json:"competitor_price"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	rec, err := NewRecord(
		"r_"+uuid.NewString(),
		req.ProductName, req.SKU,
		req.YourPrice, req.CompetitorPrice,
		req.Competitor,
		time.Now(),
	)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := s.Store.Append(r.Context(), rec); err != nil {
		if s.Log != nil {
			s.Log.Error("append record failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, rec)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list records failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if recs == nil {
		recs = []PriceRecord{}
	}
	kit.WriteJSON(w, http.StatusOK, recs)
}

type Summary struct {
	TotalProducts      int   `json:"total_products"`
	CompetitivePrices  int   `json:"competitive_prices"`
	NeedReview         int   `json:"need_review"`
	AvgDifferenceCents int64 `json:"avg_difference_cents"`
}

// Summarize reduces the ledger to the dashboard's analysis pane: a price
// is competitive when it is at or below the competitor's.
func Summarize(recs []PriceRecord) Summary {
	sum := Summary{TotalProducts: len(recs)}

	var totalDiff int64
	for _, rec := range recs {
		if rec.PriceDifferenceCents <= 0 {
			sum.CompetitivePrices++
		}
		totalDiff += rec.PriceDifferenceCents
	}
	sum.NeedReview = sum.TotalProducts - sum.CompetitivePrices

	if len(recs) > 0 {
		sum.AvgDifferenceCents = int64(math.Round(float64(totalDiff) / float64(len(recs))))
	}
	return sum
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("summary failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, Summarize(recs))
}

func decodeAddRequest(w http.ResponseWriter, r *http.Request) (addReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req addReq
	if err := dec.Decode(&req); err != nil {
		return addReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addReq{}, errors.New("extra data after json object")
	}

	return req, nil
}
