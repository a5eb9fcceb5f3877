// Copyright 2023 Canonical Ltd.

package hub_test

import (
	"context"
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
	"github.com/canonical/rhub/internal/hub"
	"github.com/canonical/rhub/internal/hubtest"
)

// newUsageEnv returns a test environment whose usage reporter reports
// consumption for prod-02 and stage-01 and nothing for prod-01.
func newUsageEnv(c *qt.C) *testEnv {
	reporter := &hubtest.UsageReporter{}
	env := newTestEnv(c, reporter)
	reporter.UserUsage = map[uint]map[string]*int64{
		env.prod2.ID: {"num_servers": i64(1)},
	}
	reporter.TotalUsage = map[uint]map[string]*int64{
		env.prod2.ID: {"num_servers": i64(4)},
		env.stage.ID: {"num_servers": i64(1), "num_vcpus": i64(8)},
	}
	return env
}

func TestRegionUsage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	env := newUsageEnv(c)

	view, err := env.hub.RegionUsage(ctx, &env.alice, env.prod2.ID)
	c.Assert(err, qt.IsNil)
	c.Check(view, qt.DeepEquals, params.UsageView{
		UserQuota: map[string]*int64{
			"num_servers": i64(2),
			"num_vcpus":   nil,
			"ram_mb":      i64(4096),
			"volumes_gb":  nil,
		},
		UserQuotaUsage: map[string]*int64{
			"num_servers": i64(1),
		},
		TotalQuota: map[string]*int64{
			"num_servers": i64(20),
			"num_vcpus":   i64(64),
			"ram_mb":      nil,
			"volumes_gb":  nil,
		},
		TotalQuotaUsage: map[string]*int64{
			"num_servers": i64(4),
		},
	})

	// A region without quotas or reported consumption has an all-absent
	// view.
	view, err = env.hub.RegionUsage(ctx, &env.carol, env.prod1.ID)
	c.Assert(err, qt.IsNil)
	c.Check(view, qt.DeepEquals, params.UsageView{})

	_, err = env.hub.RegionUsage(ctx, &env.carol, env.prod2.ID)
	c.Check(errors.ErrorCode(err), qt.Equals, errors.CodeUnauthorized)

	_, err = env.hub.RegionUsage(ctx, &env.carol, 999)
	c.Check(errors.ErrorCode(err), qt.Equals, errors.CodeNotFound)
	c.Check(err, qt.ErrorMatches, `region 999 does not exist`)
}

func TestAllRegionsUsage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	env := newUsageEnv(c)

	usage, err := env.hub.AllRegionsUsage(ctx, &env.admin)
	c.Assert(err, qt.IsNil)
	c.Check(usage, qt.HasLen, 4)

	key := func(id uint) string { return strconv.FormatUint(uint64(id), 10) }
	c.Check(usage[key(env.prod1.ID)], qt.DeepEquals, params.UsageView{})
	c.Check(usage[key(env.stage.ID)].TotalQuotaUsage, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(1),
		"num_vcpus":   i64(8),
	})

	// The "all" entry sums every region exactly once. Limits set in only
	// one region carry over unchanged, limits set nowhere stay absent.
	all := usage["all"]
	c.Check(all.TotalQuota, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(25),
		"num_vcpus":   i64(64),
		"ram_mb":      nil,
		"volumes_gb":  nil,
	})
	c.Check(all.TotalQuotaUsage, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(5),
		"num_vcpus":   i64(8),
	})
	c.Check(all.UserQuota, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(2),
		"num_vcpus":   nil,
		"ram_mb":      i64(4096),
		"volumes_gb":  nil,
	})
	c.Check(all.UserQuotaUsage, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(1),
	})
}

func TestAllRegionsUsageScope(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	env := newUsageEnv(c)

	// carol only reads prod-01, so the aggregate covers just that
	// region.
	usage, err := env.hub.AllRegionsUsage(ctx, &env.carol)
	c.Assert(err, qt.IsNil)
	c.Check(usage, qt.HasLen, 2)
	c.Check(usage["all"], qt.DeepEquals, params.UsageView{})
	_, ok := usage[strconv.FormatUint(uint64(env.prod2.ID), 10)]
	c.Check(ok, qt.IsFalse)
}

func TestAllRegionsUsageNoRegions(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	database := newTestEnv(c, nil).hub.Database
	for _, name := range []string{"prod-01", "prod-02", "stage-01"} {
		region := dbmodel.Region{}
		err := database.DB.Where("name = ?", name).First(&region).Error
		c.Assert(err, qt.IsNil)
		c.Assert(database.GetRegion(ctx, &region), qt.IsNil)
		c.Assert(database.DeleteRegion(ctx, &region), qt.IsNil)
	}
	h := &hub.Hub{Database: database}

	_, err := h.AllRegionsUsage(ctx, &dbmodel.User{Name: "admin", Admin: true})
	c.Check(errors.ErrorCode(err), qt.Equals, errors.CodeNotFound)
	c.Check(err, qt.ErrorMatches, `no regions exist`)
}

func TestMergeQuotaMaps(t *testing.T) {
	c := qt.New(t)

	a := map[string]*int64{"num_servers": i64(2), "ram_mb": nil}
	b := map[string]*int64{"num_servers": i64(3), "num_vcpus": i64(8)}

	// A nil map is the identity of the merge.
	c.Check(hub.MergeQuotaMaps(nil, a), qt.DeepEquals, a)
	c.Check(hub.MergeQuotaMaps(a, nil), qt.DeepEquals, a)

	merged := hub.MergeQuotaMaps(a, b)
	c.Check(merged, qt.DeepEquals, map[string]*int64{
		"num_servers": i64(5),
		"num_vcpus":   i64(8),
		"ram_mb":      nil,
	})
	// Merging is symmetric.
	c.Check(hub.MergeQuotaMaps(b, a), qt.DeepEquals, merged)
	// The operands are left untouched.
	c.Check(a["num_servers"], qt.DeepEquals, i64(2))
	c.Check(b["num_servers"], qt.DeepEquals, i64(3))
}

func TestMergeUsageViews(t *testing.T) {
	c := qt.New(t)

	view := params.UsageView{
		TotalQuota:      map[string]*int64{"num_servers": i64(10)},
		TotalQuotaUsage: map[string]*int64{"num_servers": i64(3)},
	}

	// Folding from the zero view counts every operand exactly once.
	var all params.UsageView
	for i := 0; i < 3; i++ {
		all = hub.MergeUsageViews(all, view)
	}
	c.Check(all.TotalQuota, qt.DeepEquals, map[string]*int64{"num_servers": i64(30)})
	c.Check(all.TotalQuotaUsage, qt.DeepEquals, map[string]*int64{"num_servers": i64(9)})
	c.Check(all.UserQuota, qt.IsNil)
	c.Check(all.UserQuotaUsage, qt.IsNil)
	// The folded operand is unchanged.
	c.Check(view.TotalQuota, qt.DeepEquals, map[string]*int64{"num_servers": i64(10)})
}
