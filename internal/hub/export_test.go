// Copyright 2023 Canonical Ltd.

package hub

var (
	MergeUsageViews = mergeUsageViews
	MergeQuotaMaps  = mergeQuotaMaps
)
