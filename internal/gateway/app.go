package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"PriceDesk/internal/auth"
	"PriceDesk/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	AuthURL   string
	LedgerURL string
	ProberURL string
	JWTSecret string
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond

	probeLimitPerMin = 10
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	authProxy, ledgerProxy, proberProxy, err := buildProxies(deps, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	jwt := auth.NewTokenMaker(deps.JWTSecret)
	probeLimiter := kit.NewIPRateLimiter(probeLimitPerMin, 60)

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Handle("/auth", authProxy)
	r.Handle("/auth/*", authProxy)

	// Reads and exports are public; only adding records needs a login.
	r.Get("/records", ledgerProxy.ServeHTTP)
	r.Get("/records/*", ledgerProxy.ServeHTTP)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(jwt))
		pr.Post("/records", InjectHeaders(ledgerProxy).ServeHTTP)
	})

	r.With(probeLimiter.Middleware).Get("/probe", proberProxy.ServeHTTP)

	return r, nil
}

func buildProxies(deps Deps, log *zap.Logger) (authProxy, ledgerProxy, proberProxy http.Handler, err error) {
	ap, err := NewReverseProxy(deps.AuthURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	lp, err := NewReverseProxy(deps.LedgerURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	pp, err := NewReverseProxy(deps.ProberURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return ap, lp, pp, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	upstreams := []struct {
		name string
		url  string
	}{
		{"auth", deps.AuthURL},
		{"ledger", deps.LedgerURL},
		{"prober", deps.ProberURL},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, up := range upstreams {
			if err := checkReady(ctx, up.url+"/readyz"); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+up.name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, up.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
