package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"PriceDesk/internal/gateway"
	"PriceDesk/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	metricsToken := os.Getenv("METRICS_TOKEN")

	deps := gateway.Deps{
		AuthURL:   getenv("AUTH_URL", "http://localhost:8081"),
		LedgerURL: getenv("LEDGER_URL", "http://localhost:8082"),
		ProberURL: getenv("PROBER_URL", "http://localhost:8083"),
		JWTSecret: getenv("JWT_SECRET", "dev-secret"),
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,
	})
	if err != nil {
		log.Fatal("build gateway", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
