package prober

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PriceDesk/pkg/kit"
)

type Server struct {
	Prober *Prober
	Log    *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/probe", s.probe)

	return r
}

func (s *Server) probe(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")

	results, err := s.Prober.ProbeAll(r.Context(), sku)
	if err != nil {
		if errors.Is(err, ErrEmptyIdentifier) {
			kit.WriteError(w, r, http.StatusBadRequest, "sku required", nil)
			return
		}
		if s.Log != nil {
			s.Log.Error("probe failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"sku":     sku,
		"results": results,
	})
}
