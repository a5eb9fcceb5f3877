// Copyright 2023 Canonical Ltd.

package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// A RegionProductFilter restricts the links returned by
// ListRegionProducts. All fields are optional and combine with logical
// AND. ProductName is a case-insensitive SQL LIKE pattern.
type RegionProductFilter struct {
	ProductName string
	Enabled     *bool
}

// ListRegionProducts returns all product links of the given region that
// match the filter, with their Product associations filled out.
func (d *Database) ListRegionProducts(ctx context.Context, regionID uint, filter RegionProductFilter) ([]dbmodel.RegionProduct, error) {
	const op = errors.Op("db.ListRegionProducts")
	if err := d.ready(); err != nil {
		return nil, errors.E(op, err)
	}

	db := d.DB.WithContext(ctx).Model(&dbmodel.RegionProduct{}).
		Joins("JOIN products ON products.id = region_products.product_id").
		Where("region_products.region_id = ?", regionID)
	if filter.ProductName != "" {
		db = db.Where("LOWER(products.name) LIKE LOWER(?)", filter.ProductName)
	}
	if filter.Enabled != nil {
		db = db.Where("products.enabled = ?", *filter.Enabled)
	}

	var links []dbmodel.RegionProduct
	err := db.Select("region_products.*").Preload("Product").Find(&links).Error
	if err != nil {
		return nil, errors.E(op, dbError(err))
	}
	return links, nil
}

// UpsertRegionProduct links the product to the region. If no link exists
// one is created, enabled unless the enabled argument says otherwise. If
// a link already exists its enabled flag is updated only when the
// enabled argument is non-nil, a nil argument leaves the existing state
// untouched.
func (d *Database) UpsertRegionProduct(ctx context.Context, regionID, productID uint, enabled *bool) error {
	const op = errors.Op("db.UpsertRegionProduct")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	err := d.Transaction(func(tx *Database) error {
		db := tx.DB.WithContext(ctx)
		var link dbmodel.RegionProduct
		err := db.Where("region_id = ? AND product_id = ?", regionID, productID).First(&link).Error
		if err == gorm.ErrRecordNotFound {
			link = dbmodel.RegionProduct{
				RegionID:  regionID,
				ProductID: productID,
				Enabled:   true,
			}
			if enabled != nil {
				link.Enabled = *enabled
			}
			return db.Create(&link).Error
		}
		if err != nil {
			return err
		}
		if enabled == nil {
			return nil
		}
		return db.Model(&link).Update("enabled", *enabled).Error
	})
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// RemoveRegionProduct removes the link between the region and the
// product. Removing a link that does not exist is not an error.
func (d *Database) RemoveRegionProduct(ctx context.Context, regionID, productID uint) error {
	const op = errors.Op("db.RemoveRegionProduct")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	err := d.DB.WithContext(ctx).
		Where("region_id = ? AND product_id = ?", regionID, productID).
		Delete(&dbmodel.RegionProduct{}).Error
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}
