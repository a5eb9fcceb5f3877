// Copyright 2023 Canonical Ltd.

package hub_test

import (
	"context"

	qt "github.com/frankban/quicktest"

	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/hub"
	"github.com/canonical/rhub/internal/hubtest"
)

func i64(v int64) *int64 {
	return &v
}

// A testEnv is a hub backed by a fresh database populated with a fixed
// set of groups, users and regions:
//
//   - prod-01: shared, owned by lab-owners, no quotas
//   - prod-02: restricted to lab-users, owned by lab-owners, quotas
//     configured
//   - stage-01: restricted to lab-users, owned by ops, disabled, total
//     quota configured
//
// admin is an administrator, bob is a member of lab-owners, alice is a
// member of lab-users and carol is in no group at all.
type testEnv struct {
	hub *hub.Hub

	ownerGroup dbmodel.Group
	usersGroup dbmodel.Group
	opsGroup   dbmodel.Group

	admin dbmodel.User
	alice dbmodel.User
	bob   dbmodel.User
	carol dbmodel.User

	rdu dbmodel.Location

	prod1 dbmodel.Region
	prod2 dbmodel.Region
	stage dbmodel.Region
}

func newTestEnv(c *qt.C, reporter hub.UsageReporter) *testEnv {
	ctx := context.Background()
	database := &db.Database{DB: hubtest.MemoryDB(c, nil)}
	c.Assert(database.Migrate(ctx, false), qt.IsNil)

	env := testEnv{
		hub: &hub.Hub{
			Database:      database,
			UsageReporter: reporter,
		},
	}

	env.ownerGroup = dbmodel.Group{Name: "lab-owners"}
	c.Assert(database.AddGroup(ctx, &env.ownerGroup), qt.IsNil)
	env.usersGroup = dbmodel.Group{Name: "lab-users"}
	c.Assert(database.AddGroup(ctx, &env.usersGroup), qt.IsNil)
	env.opsGroup = dbmodel.Group{Name: "ops"}
	c.Assert(database.AddGroup(ctx, &env.opsGroup), qt.IsNil)

	env.admin = dbmodel.User{Name: "admin", Admin: true}
	c.Assert(database.AddUser(ctx, &env.admin), qt.IsNil)
	env.alice = dbmodel.User{Name: "alice"}
	c.Assert(database.AddUser(ctx, &env.alice), qt.IsNil)
	c.Assert(database.AddUserToGroup(ctx, &env.alice, &env.usersGroup), qt.IsNil)
	c.Assert(database.GetUser(ctx, &env.alice), qt.IsNil)
	env.bob = dbmodel.User{Name: "bob"}
	c.Assert(database.AddUser(ctx, &env.bob), qt.IsNil)
	c.Assert(database.AddUserToGroup(ctx, &env.bob, &env.ownerGroup), qt.IsNil)
	c.Assert(database.GetUser(ctx, &env.bob), qt.IsNil)
	env.carol = dbmodel.User{Name: "carol"}
	c.Assert(database.AddUser(ctx, &env.carol), qt.IsNil)

	env.rdu = dbmodel.Location{Name: "rdu2"}
	c.Assert(database.AddLocation(ctx, &env.rdu), qt.IsNil)

	env.prod1 = dbmodel.Region{
		Name:                 "prod-01",
		LocationID:           &env.rdu.ID,
		Enabled:              true,
		OwnerGroupID:         env.ownerGroup.ID,
		ProvisioningServerID: 1,
		CloudID:              1,
	}
	c.Assert(database.AddRegion(ctx, &env.prod1), qt.IsNil)

	env.prod2 = dbmodel.Region{
		Name:                 "prod-02",
		Enabled:              true,
		OwnerGroupID:         env.ownerGroup.ID,
		UsersGroupID:         &env.usersGroup.ID,
		ProvisioningServerID: 1,
		CloudID:              2,
		UserQuota: &dbmodel.Quota{
			NumServers: i64(2),
			RAMMB:      i64(4096),
		},
		TotalQuota: &dbmodel.Quota{
			NumServers: i64(20),
			NumVCPUs:   i64(64),
		},
	}
	c.Assert(database.AddRegion(ctx, &env.prod2), qt.IsNil)

	env.stage = dbmodel.Region{
		Name:                 "stage-01",
		OwnerGroupID:         env.opsGroup.ID,
		UsersGroupID:         &env.usersGroup.ID,
		ProvisioningServerID: 2,
		CloudID:              1,
		TotalQuota: &dbmodel.Quota{
			NumServers: i64(5),
		},
	}
	c.Assert(database.AddRegion(ctx, &env.stage), qt.IsNil)

	return &env
}
