// Copyright 2023 Canonical Ltd.

// Package rhub contains the wiring of the rhub server, a
// resource-management API for lab infrastructure.
package rhub

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/juju/zaputil/zapctx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/debugapi"
	"github.com/canonical/rhub/internal/errors"
	"github.com/canonical/rhub/internal/hub"
	"github.com/canonical/rhub/internal/hubhttp"
	"github.com/canonical/rhub/internal/logger"
)

// A Params structure contains the parameters required to initialise a
// new Service.
type Params struct {
	// DSN is the data source name that the service uses to connect to
	// its database. If this is empty an in-memory database will be
	// used.
	DSN string

	// UsageReporter reports current quota consumption, if available.
	UsageReporter hub.UsageReporter
}

// A Service is the complete rhub server.
type Service struct {
	hub hub.Hub

	mux *chi.Mux
}

// ServeHTTP implements http.Handler.
func (s *Service) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// NewService creates a new service for handling rhub requests.
func NewService(ctx context.Context, p Params) (*Service, error) {
	const op = errors.Op("NewService")

	s := new(Service)
	s.mux = chi.NewRouter()

	if p.DSN == "" {
		p.DSN = "file::memory:?cache=shared"
	}
	gdb, err := openDB(ctx, p.DSN)
	if err != nil {
		return nil, errors.E(op, err)
	}
	s.hub.Database = &db.Database{DB: gdb}
	if err := s.hub.Database.Migrate(ctx, false); err != nil {
		return nil, errors.E(op, err)
	}
	s.hub.UsageReporter = p.UsageReporter

	handler := &hubhttp.Handler{Hub: &s.hub}
	s.mux.Mount("/v1", handler.Routes())
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.Handle("/debug/*", debugapi.Handler(ctx, map[string]debugapi.StatusCheck{
		"server_start_time": debugapi.ServerStartTime,
		"database":          databaseStatusCheck(s.hub.Database),
	}))

	return s, nil
}

// databaseStatusCheck reports whether the database connection is
// usable.
func databaseStatusCheck(database *db.Database) debugapi.StatusCheck {
	return debugapi.MakeStatusCheck("database", func(ctx context.Context) (interface{}, error) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}
		return "ok", nil
	})
}

func openDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	zapctx.Info(ctx, "connecting database")

	var dialect gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "pgx:"):
		dialect = postgres.Open(strings.TrimPrefix(dsn, "pgx:"))
	case strings.HasPrefix(dsn, "postgres:") || strings.HasPrefix(dsn, "postgresql:"):
		dialect = postgres.Open(dsn)
	case strings.HasPrefix(dsn, "file:"):
		dialect = sqlite.Open(dsn)
	default:
		return nil, errors.E(errors.CodeServerConfiguration, "unsupported DSN")
	}
	return gorm.Open(dialect, &gorm.Config{
		Logger: logger.GormLogger{},
	})
}
