// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"
)

// A Location is a physical location hosting zero or more regions.
type Location struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the name of the location.
	Name string `gorm:"not null;uniqueIndex"`
}
