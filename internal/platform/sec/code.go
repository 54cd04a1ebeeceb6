// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// # Confirmation Codes

// GenerateConfirmationCode returns a random numeric code of the given length,
// zero-padded (e.g. "042917"). crypto/rand keeps codes unguessable even at
// six digits.
func GenerateConfirmationCode(digits int) (string, error) {
	bound := big.NewInt(1)
	for i := 0; i < digits; i++ {
		bound.Mul(bound, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}

// HashCode hashes a plain-text confirmation code with bcrypt.
//
// Codes are stored hashed so a database leak does not let an attacker
// complete someone else's signup.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its stored hash.
// The comparison is constant-time to prevent timing attacks.
func CheckCodeHash(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
