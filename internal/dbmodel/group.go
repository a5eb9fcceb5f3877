// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"
)

// A Group represents a group of users. Regions reference groups both for
// ownership and for restricting read access.
type Group struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the name of the group.
	Name string `gorm:"not null;uniqueIndex"`
}
