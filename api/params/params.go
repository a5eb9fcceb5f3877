// Copyright 2023 Canonical Ltd.

// Package params holds the types used in the rhub API requests and
// responses.
package params

// A Region describes a region in API requests and responses.
type Region struct {
	ID                   uint              `json:"id"`
	Name                 string            `json:"name"`
	LocationID           *uint             `json:"location_id"`
	Location             string            `json:"location,omitempty"`
	Enabled              bool              `json:"enabled"`
	ReservationsEnabled  bool              `json:"reservations_enabled"`
	OwnerGroupID         uint              `json:"owner_group_id"`
	UsersGroupID         *uint             `json:"users_group_id"`
	ProvisioningServerID uint              `json:"provisioning_server_id"`
	CloudID              uint              `json:"cloud_id"`
	DNSServerID          *uint             `json:"dns_server_id"`
	ConfigServerID       *uint             `json:"config_server_id"`
	UserQuota            map[string]*int64 `json:"user_quota,omitempty"`
	TotalQuota           map[string]*int64 `json:"total_quota,omitempty"`
	Href                 map[string]string `json:"_href,omitempty"`
}

// An AddRegionRequest is the request body to create a region.
type AddRegionRequest struct {
	Name                 string            `json:"name"`
	LocationID           *uint             `json:"location_id,omitempty"`
	Enabled              *bool             `json:"enabled,omitempty"`
	ReservationsEnabled  *bool             `json:"reservations_enabled,omitempty"`
	OwnerGroupID         uint              `json:"owner_group_id"`
	UsersGroupID         *uint             `json:"users_group_id,omitempty"`
	ProvisioningServerID uint              `json:"provisioning_server_id"`
	CloudID              uint              `json:"cloud_id"`
	DNSServerID          *uint             `json:"dns_server_id,omitempty"`
	ConfigServerID       *uint             `json:"config_server_id,omitempty"`
	UserQuota            map[string]*int64 `json:"user_quota,omitempty"`
	TotalQuota           map[string]*int64 `json:"total_quota,omitempty"`
}

// An UpdateRegionRequest is the request body to update a region. A nil
// field leaves the current value unchanged.
type UpdateRegionRequest struct {
	Name                 *string `json:"name,omitempty"`
	LocationID           *uint   `json:"location_id,omitempty"`
	Enabled              *bool   `json:"enabled,omitempty"`
	ReservationsEnabled  *bool   `json:"reservations_enabled,omitempty"`
	OwnerGroupID         *uint   `json:"owner_group_id,omitempty"`
	UsersGroupID         *uint   `json:"users_group_id,omitempty"`
	ProvisioningServerID *uint   `json:"provisioning_server_id,omitempty"`
	CloudID              *uint   `json:"cloud_id,omitempty"`
	DNSServerID          *uint   `json:"dns_server_id,omitempty"`
	ConfigServerID       *uint   `json:"config_server_id,omitempty"`
}

// A ListRegionsResponse is the response to a list-regions request. Total
// is the number of regions matching the request filter, not the number
// of entries in Data.
type ListRegionsResponse struct {
	Data  []Region `json:"data"`
	Total int64    `json:"total"`
}

// A Product describes a product in API responses.
type Product struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// A RegionProduct describes a region to product link in API responses.
type RegionProduct struct {
	RegionID  uint              `json:"region_id"`
	ProductID uint              `json:"product_id"`
	Product   Product           `json:"product"`
	Enabled   bool              `json:"enabled"`
	Href      map[string]string `json:"_href,omitempty"`
}

// An AddRegionProductRequest is the request body to add a product to a
// region, or to update an existing link. A nil Enabled leaves the
// current state of an existing link unchanged.
type AddRegionProductRequest struct {
	ID      uint  `json:"id"`
	Enabled *bool `json:"enabled,omitempty"`
}

// A RemoveRegionProductRequest is the request body to remove a product
// from a region.
type RemoveRegionProductRequest struct {
	ID uint `json:"id"`
}

// A UsageView is a quota and consumption snapshot for one region, or the
// aggregate of many. A nil map means no data is available for that
// field.
type UsageView struct {
	UserQuota       map[string]*int64 `json:"user_quota"`
	UserQuotaUsage  map[string]*int64 `json:"user_quota_usage"`
	TotalQuota      map[string]*int64 `json:"total_quota"`
	TotalQuotaUsage map[string]*int64 `json:"total_quota_usage"`
}

// An Error is the response body reported for a failed request.
type Error struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}
