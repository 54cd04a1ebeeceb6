// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type for users, reviews, and comments. Because it is
// time-sortable, it keeps B-tree inserts append-mostly in PostgreSQL,
// avoiding the index fragmentation common with random UUIDv4.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether s parses as any RFC 4122 UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
