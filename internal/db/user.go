// Copyright 2023 Canonical Ltd.

package db

import (
	"context"

	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
)

// AddUser adds a new user. Any groups set on the user are linked to it.
func (d *Database) AddUser(ctx context.Context, user *dbmodel.User) error {
	const op = errors.Op("db.AddUser")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Create(user).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// GetUser fills in the user identified by either its ID or its name,
// whichever is set, along with its group memberships.
func (d *Database) GetUser(ctx context.Context, user *dbmodel.User) error {
	const op = errors.Op("db.GetUser")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	err := d.DB.WithContext(ctx).Preload("Groups").Where(user).First(user).Error
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// AddUserToGroup makes the user a member of the group.
func (d *Database) AddUserToGroup(ctx context.Context, user *dbmodel.User, group *dbmodel.Group) error {
	const op = errors.Op("db.AddUserToGroup")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	err := d.DB.WithContext(ctx).Model(user).Association("Groups").Append(group)
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}
