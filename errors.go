// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dualview

import "errors"

var (
	// ErrAllocation is passed to the fatal handler when a composite buffer
	// or capture texture cannot be allocated.
	ErrAllocation = errors.New("dualview: surface allocation failed")

	// ErrOverlayMissing is logged when the overlay resource is absent.
	ErrOverlayMissing = errors.New("dualview: overlay resource missing")

	// ErrOverlayDecode is logged when the overlay cannot be decoded or uploaded.
	ErrOverlayDecode = errors.New("dualview: overlay unusable")
)
