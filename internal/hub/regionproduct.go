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

func regionProductToParams(region *dbmodel.Region, link *dbmodel.RegionProduct) params.RegionProduct {
	href := regionHref(region)
	href["product"] = fmt.Sprintf("/v1/products/%d", link.ProductID)
	return params.RegionProduct{
		RegionID:  link.RegionID,
		ProductID: link.ProductID,
		Product: params.Product{
			ID:          link.Product.ID,
			Name:        link.Product.Name,
			Description: link.Product.Description,
			Enabled:     link.Product.Enabled,
		},
		Enabled: link.Enabled,
		Href:    href,
	}
}

// ListRegionProducts returns all products available in the region with
// the given ID that match the filter. The user must be able to read the
// region.
func (h *Hub) ListRegionProducts(ctx context.Context, u *dbmodel.User, regionID uint, filter db.RegionProductFilter) ([]params.RegionProduct, error) {
	const op = errors.Op("hub.ListRegionProducts")

	region, err := h.getRegion(ctx, regionID)
	if err != nil {
		return nil, errors.E(op, err)
	}
	if !auth.CanAccessRegion(u, region) {
		return nil, errors.E(op, errors.CodeUnauthorized, "you don't have access to this region")
	}

	links, err := h.Database.ListRegionProducts(ctx, region.ID, filter)
	if err != nil {
		return nil, errors.E(op, err)
	}
	products := make([]params.RegionProduct, len(links))
	for i := range links {
		products[i] = regionProductToParams(region, &links[i])
	}
	return products, nil
}

// AddRegionProduct makes the product identified by the request available
// in the region with the given ID. If the product is already available
// in the region its enabled flag is updated only when the request sets
// it, there is never more than one link for a (region, product) pair.
// The user must be able to modify the region.
func (h *Hub) AddRegionProduct(ctx context.Context, u *dbmodel.User, regionID uint, req params.AddRegionProductRequest) error {
	const op = errors.Op("hub.AddRegionProduct")

	region, err := h.getRegion(ctx, regionID)
	if err != nil {
		return errors.E(op, err)
	}
	if !auth.CanModifyRegion(u, region) {
		return errors.E(op, errors.CodeUnauthorized, "you don't have write access to this region")
	}

	product := dbmodel.Product{ID: req.ID}
	if err := h.Database.GetProduct(ctx, &product); err != nil {
		if errors.ErrorCode(err) == errors.CodeNotFound {
			return errors.E(op, errors.CodeNotFound, fmt.Sprintf("product %d does not exist", req.ID))
		}
		return errors.E(op, err)
	}

	if err := h.Database.UpsertRegionProduct(ctx, region.ID, product.ID, req.Enabled); err != nil {
		return errors.E(op, err)
	}

	zapctx.Info(ctx, "product added to region",
		zap.Uint("region", region.ID),
		zap.Uint("product", product.ID),
		zap.Uint("user", u.ID),
	)
	return nil
}

// RemoveRegionProduct makes the product identified by the request
// unavailable in the region with the given ID. Removing a product that
// is not available in the region is not an error. The user must be able
// to modify the region.
func (h *Hub) RemoveRegionProduct(ctx context.Context, u *dbmodel.User, regionID uint, req params.RemoveRegionProductRequest) error {
	const op = errors.Op("hub.RemoveRegionProduct")

	region, err := h.getRegion(ctx, regionID)
	if err != nil {
		return errors.E(op, err)
	}
	if !auth.CanModifyRegion(u, region) {
		return errors.E(op, errors.CodeUnauthorized, "you don't have write access to this region")
	}

	product := dbmodel.Product{ID: req.ID}
	if err := h.Database.GetProduct(ctx, &product); err != nil {
		if errors.ErrorCode(err) == errors.CodeNotFound {
			return errors.E(op, errors.CodeNotFound, fmt.Sprintf("product %d does not exist", req.ID))
		}
		return errors.E(op, err)
	}

	if err := h.Database.RemoveRegionProduct(ctx, region.ID, product.ID); err != nil {
		return errors.E(op, err)
	}

	zapctx.Info(ctx, "product removed from region",
		zap.Uint("region", region.ID),
		zap.Uint("product", product.ID),
		zap.Uint("user", u.ID),
	)
	return nil
}
