// Copyright 2023 Canonical Ltd.

package dbmodel_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/canonical/rhub/internal/dbmodel"
)

func TestQuotaToMap(t *testing.T) {
	c := qt.New(t)

	quota := dbmodel.Quota{
		NumServers: i64(10),
		RAMMB:      i64(8192),
	}
	c.Check(quota.ToMap(), qt.DeepEquals, map[string]*int64{
		"num_servers": i64(10),
		"num_vcpus":   nil,
		"ram_mb":      i64(8192),
		"volumes_gb":  nil,
	})
}

func TestQuotaFromMap(t *testing.T) {
	c := qt.New(t)

	quota := dbmodel.Quota{
		NumServers: i64(10),
		NumVCPUs:   i64(32),
	}
	quota.FromMap(map[string]*int64{
		"num_servers": i64(20),
		"num_vcpus":   nil,
		"volumes_gb":  i64(100),
	})

	// Present keys overwrite, a nil value clears the limit and absent
	// keys leave it untouched.
	c.Check(quota, qt.DeepEquals, dbmodel.Quota{
		NumServers: i64(20),
		NumVCPUs:   nil,
		VolumesGB:  i64(100),
	})
}
