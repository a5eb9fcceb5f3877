// Copyright 2023 Canonical Ltd.

package hub

import (
	"context"
	"fmt"

	"github.com/juju/zaputil/zapctx"
	"go.uber.org/zap"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/auth"
	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// regionHref returns the cross-reference links of the region.
func regionHref(region *dbmodel.Region) map[string]string {
	href := map[string]string{
		"region":              fmt.Sprintf("/v1/regions/%d", region.ID),
		"region_usage":        fmt.Sprintf("/v1/regions/%d/usage", region.ID),
		"region_products":     fmt.Sprintf("/v1/regions/%d/products", region.ID),
		"provisioning_server": fmt.Sprintf("/v1/provisioning-servers/%d", region.ProvisioningServerID),
		"owner_group":         fmt.Sprintf("/v1/groups/%d", region.OwnerGroupID),
		"cloud":               fmt.Sprintf("/v1/clouds/%d", region.CloudID),
	}
	if region.ConfigServerID != nil {
		href["config_server"] = fmt.Sprintf("/v1/config-servers/%d", *region.ConfigServerID)
	}
	if region.DNSServerID != nil {
		href["dns_server"] = fmt.Sprintf("/v1/dns-servers/%d", *region.DNSServerID)
	}
	if region.UsersGroupID != nil {
		href["users_group"] = fmt.Sprintf("/v1/groups/%d", *region.UsersGroupID)
	}
	return href
}

func regionToParams(region *dbmodel.Region) params.Region {
	pr := region.ToParams()
	pr.Href = regionHref(region)
	return pr
}

// getRegion returns the region with the given ID. If no such region
// exists an error with a code of CodeNotFound is returned, existence is
// reported before any permission check.
func (h *Hub) getRegion(ctx context.Context, id uint) (*dbmodel.Region, error) {
	region := dbmodel.Region{ID: id}
	if err := h.Database.GetRegion(ctx, &region); err != nil {
		if errors.ErrorCode(err) == errors.CodeNotFound {
			return nil, errors.E(errors.CodeNotFound, fmt.Sprintf("region %d does not exist", id))
		}
		return nil, err
	}
	return &region, nil
}

// ListRegions returns the page of regions the user may read that match
// the given filter, along with the total number of matching regions.
// Sorting and pagination behave as described in db.ListRegions.
func (h *Hub) ListRegions(ctx context.Context, u *dbmodel.User, filter db.RegionFilter, sort []string, page, limit int) (params.ListRegionsResponse, error) {
	const op = errors.Op("hub.ListRegions")

	scope := auth.RegionScope(u)
	regions, total, err := h.Database.ListRegions(ctx, scope, filter, sort, page, limit)
	if err != nil {
		return params.ListRegionsResponse{}, errors.E(op, err)
	}
	resp := params.ListRegionsResponse{
		Data:  make([]params.Region, len(regions)),
		Total: total,
	}
	for i := range regions {
		resp.Data[i] = regionToParams(&regions[i])
	}
	return resp, nil
}

// GetRegion returns the region with the given ID. If no such region
// exists an error with a code of CodeNotFound is returned, if the user
// may not read the region an error with a code of CodeUnauthorized is
// returned.
func (h *Hub) GetRegion(ctx context.Context, u *dbmodel.User, id uint) (params.Region, error) {
	const op = errors.Op("hub.GetRegion")

	region, err := h.getRegion(ctx, id)
	if err != nil {
		return params.Region{}, errors.E(op, err)
	}
	if !auth.CanAccessRegion(u, region) {
		return params.Region{}, errors.E(op, errors.CodeUnauthorized, "you don't have access to this region")
	}
	return regionToParams(region), nil
}

// CreateRegion creates a new region from the given request. A duplicate
// region name results in an error with a code of CodeAlreadyExists.
func (h *Hub) CreateRegion(ctx context.Context, u *dbmodel.User, req params.AddRegionRequest) (params.Region, error) {
	const op = errors.Op("hub.CreateRegion")

	region := dbmodel.Region{
		Name:                 req.Name,
		LocationID:           req.LocationID,
		Enabled:              true,
		OwnerGroupID:         req.OwnerGroupID,
		UsersGroupID:         req.UsersGroupID,
		ProvisioningServerID: req.ProvisioningServerID,
		CloudID:              req.CloudID,
		DNSServerID:          req.DNSServerID,
		ConfigServerID:       req.ConfigServerID,
	}
	if req.Enabled != nil {
		region.Enabled = *req.Enabled
	}
	if req.ReservationsEnabled != nil {
		region.ReservationsEnabled = *req.ReservationsEnabled
	}
	if req.UserQuota != nil {
		region.UserQuota = new(dbmodel.Quota)
		region.UserQuota.FromMap(req.UserQuota)
	}
	if req.TotalQuota != nil {
		region.TotalQuota = new(dbmodel.Quota)
		region.TotalQuota.FromMap(req.TotalQuota)
	}
	if !auth.CanModifyRegion(u, &region) {
		return params.Region{}, errors.E(op, errors.CodeUnauthorized, "you don't have write access to this region")
	}
	if err := h.Database.AddRegion(ctx, &region); err != nil {
		return params.Region{}, errors.E(op, err)
	}

	zapctx.Info(ctx, "region created",
		zap.Uint("region", region.ID),
		zap.String("name", region.Name),
		zap.Uint("user", u.ID),
	)
	return h.GetRegion(ctx, u, region.ID)
}

// UpdateRegion applies the given partial update to the region with the
// given ID and returns the updated region. Nil fields in the request
// leave the current values unchanged.
func (h *Hub) UpdateRegion(ctx context.Context, u *dbmodel.User, id uint, req params.UpdateRegionRequest) (params.Region, error) {
	const op = errors.Op("hub.UpdateRegion")

	region, err := h.getRegion(ctx, id)
	if err != nil {
		return params.Region{}, errors.E(op, err)
	}
	if !auth.CanModifyRegion(u, region) {
		return params.Region{}, errors.E(op, errors.CodeUnauthorized, "you don't have write access to this region")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.ReservationsEnabled != nil {
		updates["reservations_enabled"] = *req.ReservationsEnabled
	}
	if req.OwnerGroupID != nil {
		updates["owner_group_id"] = *req.OwnerGroupID
	}
	if req.UsersGroupID != nil {
		updates["users_group_id"] = *req.UsersGroupID
	}
	if req.ProvisioningServerID != nil {
		updates["provisioning_server_id"] = *req.ProvisioningServerID
	}
	if req.CloudID != nil {
		updates["cloud_id"] = *req.CloudID
	}
	if req.DNSServerID != nil {
		updates["dns_server_id"] = *req.DNSServerID
	}
	if req.ConfigServerID != nil {
		updates["config_server_id"] = *req.ConfigServerID
	}
	if err := h.Database.UpdateRegion(ctx, region, updates); err != nil {
		return params.Region{}, errors.E(op, err)
	}

	zapctx.Info(ctx, "region updated",
		zap.Uint("region", region.ID),
		zap.Uint("user", u.ID),
	)
	return h.GetRegion(ctx, u, region.ID)
}

// DeleteRegion removes the region with the given ID along with all of
// its product links, in a single transaction.
func (h *Hub) DeleteRegion(ctx context.Context, u *dbmodel.User, id uint) error {
	const op = errors.Op("hub.DeleteRegion")

	region, err := h.getRegion(ctx, id)
	if err != nil {
		return errors.E(op, err)
	}
	if !auth.CanModifyRegion(u, region) {
		return errors.E(op, errors.CodeUnauthorized, "you don't have write access to this region")
	}
	if err := h.Database.DeleteRegion(ctx, region); err != nil {
		return errors.E(op, err)
	}

	zapctx.Info(ctx, "region deleted",
		zap.Uint("region", region.ID),
		zap.String("name", region.Name),
		zap.Uint("user", u.ID),
	)
	return nil
}
