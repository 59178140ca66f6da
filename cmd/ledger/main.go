package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"PriceDesk/internal/ledger"
	"PriceDesk/pkg/kit"
)

func main() {
	service := "ledger"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8082")
	metricsToken := os.Getenv("METRICS_TOKEN")

	store, err := openStore(log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}

	s := &ledger.Server{Store: store, Log: log}

	h := ledger.NewHandler(s, ledger.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(log *zap.Logger) (ledger.Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("DATABASE_URL not set, records are session-scoped in memory")
		return ledger.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return ledger.NewPostgresStore(db), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
