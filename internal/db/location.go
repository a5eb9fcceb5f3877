// Copyright 2023 Canonical Ltd.

package db

import (
	"context"

	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// AddLocation adds a new location.
func (d *Database) AddLocation(ctx context.Context, location *dbmodel.Location) error {
	const op = errors.Op("db.AddLocation")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Create(location).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// GetLocation fills in the location identified by either its ID or its
// name, whichever is set.
func (d *Database) GetLocation(ctx context.Context, location *dbmodel.Location) error {
	const op = errors.Op("db.GetLocation")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Where(location).First(location).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}
