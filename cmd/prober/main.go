package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"PriceDesk/internal/prober"
	"PriceDesk/pkg/kit"
)

func main() {
	service := "prober"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8083")
	metricsToken := os.Getenv("METRICS_TOKEN")

	reg := prometheus.NewRegistry()

	p := prober.New(prober.DefaultTargets(), log, prober.NewMetrics(reg))
	s := &prober.Server{Prober: p, Log: log}

	h := prober.NewHandler(s, prober.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,
	})

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
