// Copyright 2023 Canonical Ltd.

package hubtest

import (
	"context"

	"github.com/canonical/rhub/internal/dbmodel"
)

// A UsageReporter is a hub.UsageReporter for tests that reports static
// consumption maps keyed by region ID. Regions without an entry report
// no consumption data.
type UsageReporter struct {
	// UserUsage contains the per-user consumption reported for each
	// region.
	UserUsage map[uint]map[string]*int64

	// TotalUsage contains the region-wide consumption reported for each
	// region.
	TotalUsage map[uint]map[string]*int64

	// Err, if set, is returned by every method.
	Err error
}

// UserQuotaUsage implements hub.UsageReporter.
func (r *UsageReporter) UserQuotaUsage(_ context.Context, region *dbmodel.Region, _ *dbmodel.User) (map[string]*int64, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.UserUsage[region.ID], nil
}

// TotalQuotaUsage implements hub.UsageReporter.
func (r *UsageReporter) TotalQuotaUsage(_ context.Context, region *dbmodel.Region) (map[string]*int64, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.TotalUsage[region.ID], nil
}
