// Copyright 2023 Canonical Ltd.

package db

import (
	"context"

	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// AddGroup adds a new group.
func (d *Database) AddGroup(ctx context.Context, group *dbmodel.Group) error {
	const op = errors.Op("db.AddGroup")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Create(group).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// GetGroup fills in the group identified by either its ID or its name,
// whichever is set.
func (d *Database) GetGroup(ctx context.Context, group *dbmodel.Group) error {
	const op = errors.Op("db.GetGroup")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Where(group).First(group).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// RemoveGroup removes the group identified by its ID.
func (d *Database) RemoveGroup(ctx context.Context, group *dbmodel.Group) error {
	const op = errors.Op("db.RemoveGroup")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if group.ID == 0 {
		return errors.E(op, errors.CodeNotFound)
	}
	if err := d.DB.WithContext(ctx).Delete(group).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}
