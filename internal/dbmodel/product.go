// Copyright 2023 Canonical Ltd.

package dbmodel

import (
	"time"
)

// A Product is a provisionable offering that can be made available in
// regions.
type Product struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the name of the product.
	Name string `gorm:"not null;uniqueIndex"`

	// Description is a human-readable description of the product.
	Description string

	// Enabled indicates whether the product is available at all.
	Enabled bool
}

// A RegionProduct links a region to a product made available in it. There
// is at most one link for any (region, product) pair, enforced by the
// composite primary key.
type RegionProduct struct {
	// RegionID is the ID of the linked region.
	RegionID uint   `gorm:"primaryKey"`
	Region   Region `gorm:"constraint:OnDelete:CASCADE"`

	// ProductID is the ID of the linked product.
	ProductID uint    `gorm:"primaryKey"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`

	// Enabled indicates whether the product is enabled in the region.
	Enabled bool
}
