// Copyright 2023 Canonical Ltd.

package dbmodel_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/dbmodel"
)

func i64(v int64) *int64 {
	return &v
}

func TestRegionShared(t *testing.T) {
	c := qt.New(t)

	region := dbmodel.Region{Name: "prod-01"}
	c.Check(region.Shared(), qt.IsTrue)

	groupID := uint(1)
	region.UsersGroupID = &groupID
	c.Check(region.Shared(), qt.IsFalse)
}

func TestRegionToParams(t *testing.T) {
	c := qt.New(t)

	locationID := uint(3)
	region := dbmodel.Region{
		ID:                   1,
		Name:                 "prod-01",
		LocationID:           &locationID,
		Location:             &dbmodel.Location{ID: locationID, Name: "rdu2"},
		Enabled:              true,
		OwnerGroupID:         2,
		ProvisioningServerID: 4,
		CloudID:              5,
		UserQuota: &dbmodel.Quota{
			NumServers: i64(2),
		},
	}
	c.Check(region.ToParams(), qt.DeepEquals, params.Region{
		ID:                   1,
		Name:                 "prod-01",
		LocationID:           &locationID,
		Location:             "rdu2",
		Enabled:              true,
		OwnerGroupID:         2,
		ProvisioningServerID: 4,
		CloudID:              5,
		UserQuota: map[string]*int64{
			"num_servers": i64(2),
			"num_vcpus":   nil,
			"ram_mb":      nil,
			"volumes_gb":  nil,
		},
	})
}
