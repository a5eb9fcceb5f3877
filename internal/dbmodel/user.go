// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"
)

// A User is an authenticated user of the system. Authentication itself
// happens outside of this service, users are referenced here for group
// membership and access decisions.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the login name of the user.
	Name string `gorm:"not null;uniqueIndex"`

	// Admin indicates whether the user is a system administrator.
	// Administrators can read and modify every region.
	Admin bool

	// Groups contains the groups the user is a member of.
	Groups []Group `gorm:"many2many:user_groups"`
}

// MemberOf reports whether the user is a member of the group with the
// given ID. The user's Groups association must be filled out.
func (u *User) MemberOf(groupID uint) bool {
	for _, g := range u.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// GroupIDs returns the IDs of all groups the user is a member of. The
// user's Groups association must be filled out.
func (u *User) GroupIDs() []uint {
	ids := make([]uint, len(u.Groups))
	for i, g := range u.Groups {
		ids[i] = g.ID
	}
	return ids
}
