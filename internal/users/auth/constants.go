// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package auth

// # Identity Constraints

const (
	// MaxUsernameLen caps usernames at the historical account limit.
	MaxUsernameLen = 150

	// MaxEmailLen follows the RFC 5321 path length limit.
	MaxEmailLen = 254

	// MaxNamePartLen caps first and last names.
	MaxNamePartLen = 150
)
