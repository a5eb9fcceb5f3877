// Copyright 2023 Canonical Ltd.

package main

import (
	"context"
	"net/http"
	"os"
	"syscall"

	service "github.com/canonical/go-service"
	"github.com/juju/zaputil/zapctx"
	"go.uber.org/zap"

	"github.com/canonical/rhub"
	"github.com/canonical/rhub/version"
)

func main() {
	ctx, s := service.NewService(context.Background(), os.Interrupt, syscall.SIGTERM)
	s.Go(func() error {
		return start(ctx, s)
	})
	err := s.Wait()

	zapctx.Error(context.Background(), "shutdown", zap.Error(err))
	if _, ok := err.(*service.SignalError); !ok {
		os.Exit(1)
	}
}

// start initialises the rhubsrv service.
func start(ctx context.Context, s *service.Service) error {
	zapctx.Info(ctx, "rhub info",
		zap.String("version", version.VersionInfo.Version),
		zap.String("commit", version.VersionInfo.GitCommit),
	)
	if logLevel := os.Getenv("RHUB_LOG_LEVEL"); logLevel != "" {
		if err := zapctx.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			zapctx.Error(ctx, "cannot set log level", zap.Error(err))
		}
	}
	addr := os.Getenv("RHUB_LISTEN_ADDR")
	if addr == "" {
		addr = ":http-alt"
	}

	svc, err := rhub.NewService(ctx, rhub.Params{
		DSN: os.Getenv("RHUB_DSN"),
	})
	if err != nil {
		return err
	}

	httpsrv := &http.Server{
		Addr:    addr,
		Handler: svc,
	}
	s.OnShutdown(func() {
		if err := httpsrv.Shutdown(context.Background()); err != nil {
			zapctx.Error(ctx, "error shutting down HTTP server", zap.Error(err))
		}
	})
	s.Go(httpsrv.ListenAndServe)
	zapctx.Info(ctx, "starting rhub server", zap.String("addr", addr))
	return nil
}
