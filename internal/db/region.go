// Copyright 2023 Canonical Ltd.

package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/canonical/rhub/internal/auth"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
	"github.com/canonical/rhub/internal/servermon"
)

// AddRegion stores the region in the database. Any UserQuota or
// TotalQuota associations set on the region are stored along with it.
func (d *Database) AddRegion(ctx context.Context, region *dbmodel.Region) error {
	const op = errors.Op("db.AddRegion")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if err := d.DB.WithContext(ctx).Create(region).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// GetRegion fills in the region identified by its ID, along with its
// location, group and quota associations. If no such region exists an
// error with a code of CodeNotFound is returned.
func (d *Database) GetRegion(ctx context.Context, region *dbmodel.Region) error {
	const op = errors.Op("db.GetRegion")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if region.ID == 0 {
		return errors.E(op, errors.CodeNotFound, "region not found")
	}
	err := d.DB.WithContext(ctx).
		Preload("Location").
		Preload("OwnerGroup").
		Preload("UsersGroup").
		Preload("UserQuota").
		Preload("TotalQuota").
		First(region, region.ID).Error
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// UpdateRegion applies the given column updates to the region. Columns
// not present in the map are left unchanged.
func (d *Database) UpdateRegion(ctx context.Context, region *dbmodel.Region, updates map[string]interface{}) error {
	const op = errors.Op("db.UpdateRegion")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if region.ID == 0 {
		return errors.E(op, errors.CodeNotFound, "region not found")
	}
	if len(updates) == 0 {
		return nil
	}
	if err := d.DB.WithContext(ctx).Model(region).Updates(updates).Error; err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// DeleteRegion removes the region along with all of its product links
// and its quota records. The deletion is performed in a single
// transaction, either everything is removed or nothing is.
func (d *Database) DeleteRegion(ctx context.Context, region *dbmodel.Region) error {
	const op = errors.Op("db.DeleteRegion")
	if err := d.ready(); err != nil {
		return errors.E(op, err)
	}
	if region.ID == 0 {
		return errors.E(op, errors.CodeNotFound, "region not found")
	}
	err := d.Transaction(func(tx *Database) error {
		db := tx.DB.WithContext(ctx)
		// Product links reference the region, they have to go first.
		err := db.Where("region_id = ?", region.ID).Delete(&dbmodel.RegionProduct{}).Error
		if err != nil {
			return err
		}
		if err := db.Delete(&dbmodel.Region{}, region.ID).Error; err != nil {
			return err
		}
		if region.UserQuotaID != nil {
			if err := db.Delete(&dbmodel.Quota{}, *region.UserQuotaID).Error; err != nil {
				return err
			}
		}
		if region.TotalQuotaID != nil {
			if err := db.Delete(&dbmodel.Quota{}, *region.TotalQuotaID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.E(op, dbError(err))
	}
	return nil
}

// A RegionFilter restricts the regions returned by ListRegions. All
// fields are optional and combine with logical AND. The Name and
// LocationName fields are case-insensitive SQL LIKE patterns, the group
// name fields are case-insensitive exact matches.
type RegionFilter struct {
	Name                string
	LocationName        string
	Enabled             *bool
	ReservationsEnabled *bool
	OwnerGroupID        *uint
	OwnerGroupName      string
	UsersGroupID        *uint
	UsersGroupName      string
}

// regionSortFields maps the sort field names accepted by ListRegions to
// the columns they sort by.
var regionSortFields = map[string]string{
	"name":     "regions.name",
	"location": "locations.name",
}

// regionOrderClauses translates the given sort specification into SQL
// order clauses. Each entry names a field in regionSortFields, with an
// optional leading "-" for descending order. Unknown fields are
// rejected with a CodeBadRequest error.
func regionOrderClauses(sort []string) ([]string, error) {
	clauses := make([]string, 0, len(sort))
	for _, s := range sort {
		key := strings.TrimPrefix(s, "-")
		column, ok := regionSortFields[key]
		if !ok {
			return nil, errors.E(errors.CodeBadRequest, fmt.Sprintf("unknown sort field %q", key))
		}
		if strings.HasPrefix(s, "-") {
			column += " DESC"
		}
		clauses = append(clauses, column)
	}
	return clauses, nil
}

// ListRegions returns the page of regions within the given scope that
// match the filter, sorted by the given sort specification, along with
// the total number of matching regions. The page index is zero based; a
// limit of zero or less disables pagination. The scope is applied before
// any filter, a caller can never see a region outside its scope no
// matter the filter.
func (d *Database) ListRegions(ctx context.Context, scope auth.Scope, filter RegionFilter, sort []string, page, limit int) (_ []dbmodel.Region, total int64, err error) {
	const op = errors.Op("db.ListRegions")
	if err := d.ready(); err != nil {
		return nil, 0, errors.E(op, err)
	}

	durationObserver := servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))
	defer durationObserver()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	order, err := regionOrderClauses(sort)
	if err != nil {
		return nil, 0, errors.E(op, err)
	}

	// The query is built twice, once for the total count and once for
	// the page itself, the conditions must be identical.
	query := func() *gorm.DB {
		db := d.DB.WithContext(ctx).Model(&dbmodel.Region{}).
			Joins("LEFT JOIN locations ON locations.id = regions.location_id")
		if !scope.All {
			db = db.Where(
				"(regions.users_group_id IS NULL OR regions.users_group_id IN ? OR regions.owner_group_id IN ?)",
				scope.GroupIDs, scope.GroupIDs,
			)
		}
		if filter.Name != "" {
			db = db.Where("LOWER(regions.name) LIKE LOWER(?)", filter.Name)
		}
		if filter.LocationName != "" {
			db = db.Where("LOWER(locations.name) LIKE LOWER(?)", filter.LocationName)
		}
		if filter.Enabled != nil {
			db = db.Where("regions.enabled = ?", *filter.Enabled)
		}
		if filter.ReservationsEnabled != nil {
			db = db.Where("regions.reservations_enabled = ?", *filter.ReservationsEnabled)
		}
		if filter.OwnerGroupID != nil {
			db = db.Where("regions.owner_group_id = ?", *filter.OwnerGroupID)
		}
		if filter.OwnerGroupName != "" {
			// The group table is joined twice under different aliases,
			// the owner and users groups are independent roles.
			db = db.Joins("LEFT JOIN groups AS owner_groups ON owner_groups.id = regions.owner_group_id").
				Where("LOWER(owner_groups.name) = LOWER(?)", filter.OwnerGroupName)
		}
		if filter.UsersGroupID != nil {
			db = db.Where("regions.users_group_id = ?", *filter.UsersGroupID)
		}
		if filter.UsersGroupName != "" {
			db = db.Joins("LEFT JOIN groups AS users_groups ON users_groups.id = regions.users_group_id").
				Where("LOWER(users_groups.name) = LOWER(?)", filter.UsersGroupName)
		}
		return db
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, errors.E(op, dbError(err))
	}

	db := query().Select("regions.*")
	for _, o := range order {
		db = db.Order(o)
	}
	if limit > 0 {
		db = db.Offset(page * limit).Limit(limit)
	}
	var regions []dbmodel.Region
	err = db.
		Preload("Location").
		Preload("UserQuota").
		Preload("TotalQuota").
		Find(&regions).Error
	if err != nil {
		return nil, 0, errors.E(op, dbError(err))
	}
	return regions, total, nil
}
