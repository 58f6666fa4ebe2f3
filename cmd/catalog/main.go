package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"CourseCatalog/internal/catalog"
	"CourseCatalog/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")

	store, err := newStore(log)
	if err != nil {
		log.Fatal("init store failed", zap.Error(err))
	}

	svc := &catalog.Service{Store: store, Log: log}
	s := &catalog.Server{Service: svc, Log: log}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(log *zap.Logger) (catalog.Store, error) {
	switch kind := getenv("STORE", "file"); kind {
	case "file":
		path := getenv("COURSE_FILE", "course_catalog.json")
		log.Info("using file store", zap.String("path", path))
		return catalog.NewFileStore(path), nil

	case "memory":
		log.Info("using in-memory store")
		return catalog.NewMemStore(), nil

	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL is required for STORE=postgres")
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres store")
		return catalog.NewPostgresStore(db), nil

	default:
		log.Fatal("unknown STORE", zap.String("store", kind))
		return nil, nil
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
