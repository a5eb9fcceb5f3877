// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"

	"github.com/canonical/rhub/api/params"
)

// A Region is a named infrastructure scoping unit backed by a
// provisioning server, a virtualization cloud and, optionally, DNS and
// configuration-management servers.
type Region struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the name of the region.
	Name string `gorm:"not null;uniqueIndex"`

	// Location is the physical location of the region, if known.
	LocationID *uint
	Location   *Location

	// Enabled indicates whether the region accepts new workloads.
	Enabled bool

	// ReservationsEnabled indicates whether hosts in the region can be
	// reserved in advance.
	ReservationsEnabled bool

	// OwnerGroup is the group administratively responsible for the
	// region. It is always set.
	OwnerGroupID uint  `gorm:"not null"`
	OwnerGroup   Group `gorm:"foreignKey:OwnerGroupID"`

	// UsersGroup restricts read access to members of the group. A region
	// without a users group is shared, it is readable by any
	// authenticated user.
	UsersGroupID *uint
	UsersGroup   *Group `gorm:"foreignKey:UsersGroupID"`

	// ProvisioningServerID identifies the server that provisions
	// workloads in the region. The server itself is managed elsewhere.
	ProvisioningServerID uint `gorm:"not null"`

	// CloudID identifies the virtualization cloud backing the region.
	CloudID uint `gorm:"not null"`

	// DNSServerID identifies the DNS server for the region, if any.
	DNSServerID *uint

	// ConfigServerID identifies the configuration-management server for
	// the region, if any.
	ConfigServerID *uint

	// UserQuota is the per-user resource quota, if configured.
	UserQuotaID *uint
	UserQuota   *Quota `gorm:"foreignKey:UserQuotaID"`

	// TotalQuota is the region-wide resource quota, if configured.
	TotalQuotaID *uint
	TotalQuota   *Quota `gorm:"foreignKey:TotalQuotaID"`
}

// Shared reports whether the region is readable by any authenticated
// user.
func (r *Region) Shared() bool {
	return r.UsersGroupID == nil
}

// ToParams returns a params representation of the region. The region's
// Location, UserQuota and TotalQuota associations must be filled out, if
// set.
func (r *Region) ToParams() params.Region {
	pr := params.Region{
		ID:                   r.ID,
		Name:                 r.Name,
		LocationID:           r.LocationID,
		Enabled:              r.Enabled,
		ReservationsEnabled:  r.ReservationsEnabled,
		OwnerGroupID:         r.OwnerGroupID,
		UsersGroupID:         r.UsersGroupID,
		ProvisioningServerID: r.ProvisioningServerID,
		CloudID:              r.CloudID,
		DNSServerID:          r.DNSServerID,
		ConfigServerID:       r.ConfigServerID,
	}
	if r.Location != nil {
		pr.Location = r.Location.Name
	}
	if r.UserQuota != nil {
		pr.UserQuota = r.UserQuota.ToMap()
	}
	if r.TotalQuota != nil {
		pr.TotalQuota = r.TotalQuota.ToMap()
	}
	return pr
}
