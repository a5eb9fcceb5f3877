// Copyright 2023 Canonical Ltd.

package hub

import (
	"context"
	"strconv"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/auth"
	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// usageView builds the usage view of the region, combining its
// configured quotas with the consumption reported by the usage
// reporter. It does not mutate any state.
func (h *Hub) usageView(ctx context.Context, region *dbmodel.Region, u *dbmodel.User) (params.UsageView, error) {
	var view params.UsageView
	if region.UserQuota != nil {
		view.UserQuota = region.UserQuota.ToMap()
	}
	if region.TotalQuota != nil {
		view.TotalQuota = region.TotalQuota.ToMap()
	}
	if h.UsageReporter == nil {
		return view, nil
	}
	var err error
	view.UserQuotaUsage, err = h.UsageReporter.UserQuotaUsage(ctx, region, u)
	if err != nil {
		return params.UsageView{}, err
	}
	view.TotalQuotaUsage, err = h.UsageReporter.TotalQuotaUsage(ctx, region)
	if err != nil {
		return params.UsageView{}, err
	}
	return view, nil
}

// RegionUsage returns the usage view of the region with the given ID.
// The user must be able to read the region.
func (h *Hub) RegionUsage(ctx context.Context, u *dbmodel.User, id uint) (params.UsageView, error) {
	const op = errors.Op("hub.RegionUsage")

	region, err := h.getRegion(ctx, id)
	if err != nil {
		return params.UsageView{}, errors.E(op, err)
	}
	if !auth.CanAccessRegion(u, region) {
		return params.UsageView{}, errors.E(op, errors.CodeUnauthorized, "you don't have access to this region")
	}
	view, err := h.usageView(ctx, region, u)
	if err != nil {
		return params.UsageView{}, errors.E(op, err)
	}
	return view, nil
}

// AllRegionsUsage returns the usage view of every region the user may
// read, keyed by the decimal region ID, along with an "all" entry
// aggregating them. If the user may not read any region an error with a
// code of CodeNotFound is returned.
func (h *Hub) AllRegionsUsage(ctx context.Context, u *dbmodel.User) (map[string]params.UsageView, error) {
	const op = errors.Op("hub.AllRegionsUsage")

	scope := auth.RegionScope(u)
	regions, _, err := h.Database.ListRegions(ctx, scope, db.RegionFilter{}, nil, 0, 0)
	if err != nil {
		return nil, errors.E(op, err)
	}
	if len(regions) == 0 {
		return nil, errors.E(op, errors.CodeNotFound, "no regions exist")
	}

	result := make(map[string]params.UsageView, len(regions)+1)
	var all params.UsageView
	for i := range regions {
		view, err := h.usageView(ctx, &regions[i], u)
		if err != nil {
			return nil, errors.E(op, err)
		}
		result[strconv.FormatUint(uint64(regions[i].ID), 10)] = view
		all = mergeUsageViews(all, view)
	}
	result["all"] = all
	return result, nil
}

// mergeUsageViews combines two usage views elementwise. The merge starts
// from an all-absent zero view, is associative and counts every operand
// exactly once, so the order in which views are folded does not change
// the aggregate.
func mergeUsageViews(a, b params.UsageView) params.UsageView {
	return params.UsageView{
		UserQuota:       mergeQuotaMaps(a.UserQuota, b.UserQuota),
		UserQuotaUsage:  mergeQuotaMaps(a.UserQuotaUsage, b.UserQuotaUsage),
		TotalQuota:      mergeQuotaMaps(a.TotalQuota, b.TotalQuota),
		TotalQuotaUsage: mergeQuotaMaps(a.TotalQuotaUsage, b.TotalQuotaUsage),
	}
}

// mergeQuotaMaps combines two quota maps. For each key present in either
// map the result is the sum when both values are set, the single value
// unchanged when only one is set, and nil when neither is. A nil map
// merges as the other operand.
func mergeQuotaMaps(a, b map[string]*int64) map[string]*int64 {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := make(map[string]*int64, len(a))
	for key, av := range a {
		merged[key] = av
	}
	for key, bv := range b {
		av, ok := merged[key]
		switch {
		case !ok || av == nil:
			merged[key] = bv
		case bv == nil:
			// keep the value from a
		default:
			sum := *av + *bv
			merged[key] = &sum
		}
	}
	return merged
}
