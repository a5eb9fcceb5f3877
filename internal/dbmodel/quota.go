// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"
)

// Names of the individual limits in a quota. These are the keys used in
// the map representation of quotas and quota usage.
const (
	QuotaNumServers = "num_servers"
	QuotaNumVCPUs   = "num_vcpus"
	QuotaRAMMB      = "ram_mb"
	QuotaVolumesGB  = "volumes_gb"
)

// A Quota is a set of named numeric limits. A nil column means the
// corresponding limit is not configured.
type Quota struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// NumServers is the maximum number of servers.
	NumServers *int64

	// NumVCPUs is the maximum total number of virtual CPUs.
	NumVCPUs *int64

	// RAMMB is the maximum total memory, in MiB.
	RAMMB *int64 `gorm:"column:ram_mb"`

	// VolumesGB is the maximum total volume storage, in GiB.
	VolumesGB *int64 `gorm:"column:volumes_gb"`
}

// ToMap returns the map representation of the quota. Unconfigured limits
// are present in the map with a nil value.
func (q Quota) ToMap() map[string]*int64 {
	return map[string]*int64{
		QuotaNumServers: q.NumServers,
		QuotaNumVCPUs:   q.NumVCPUs,
		QuotaRAMMB:      q.RAMMB,
		QuotaVolumesGB:  q.VolumesGB,
	}
}

// FromMap updates the quota limits from the given map representation.
// Keys not present in the map leave the corresponding limit untouched.
func (q *Quota) FromMap(m map[string]*int64) {
	if v, ok := m[QuotaNumServers]; ok {
		q.NumServers = v
	}
	if v, ok := m[QuotaNumVCPUs]; ok {
		q.NumVCPUs = v
	}
	if v, ok := m[QuotaRAMMB]; ok {
		q.RAMMB = v
	}
	if v, ok := m[QuotaVolumesGB]; ok {
		q.VolumesGB = v
	}
}
