// Copyright 2023 Canonical Ltd.

package db

import (
	"context"

	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// AddProduct adds a new product.
func (d *Database) AddProduct(ctx context.Context, product *dbmodel.Product) error {
	const op = errors.Op("db.AddProduct")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Create(product).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// GetProduct fills in the product identified by either its ID or its
// name, whichever is set.
func (d *Database) GetProduct(ctx context.Context, product *dbmodel.Product) error {
	const op = errors.Op("db.GetProduct")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Where(product).First(product).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}
