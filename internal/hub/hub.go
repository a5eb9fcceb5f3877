// Copyright 2023 Canonical Ltd.

// Package hub contains the business logic used to manage lab regions,
// the products available in them and their quota usage.
package hub

import (
	"context"

	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/dbmodel"
)

// A Hub provides the business logic of the rhub server. All operations
// take the authenticated user as an explicit parameter and enforce the
// region access policy before touching any data.
type Hub struct {
	// Database is the database used by the hub.
	Database *db.Database

	// UsageReporter reports current quota consumption. Consumption is
	// tracked by the systems that provision workloads, not by the hub
	// itself. If it is nil no consumption data is reported.
	UsageReporter UsageReporter
}

// A UsageReporter reports the current quota consumption of a region.
// Either map may be nil when no consumption data is available.
type UsageReporter interface {
	// UserQuotaUsage returns the user's current consumption in the
	// region.
	UserQuotaUsage(ctx context.Context, region *dbmodel.Region, user *dbmodel.User) (map[string]*int64, error)

	// TotalQuotaUsage returns the region-wide current consumption.
	TotalQuotaUsage(ctx context.Context, region *dbmodel.Region) (map[string]*int64, error)
}
