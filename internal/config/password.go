package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds the bcrypt cost and an optional global pepper for
// password hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig builds a password configuration from the environment.
// BCRYPT_COST defaults to 12 and must stay within 10-14; PASSWORD_PEPPER is
// optional.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cost = parsed
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}, nil
}

// HashPassword hashes a password with bcrypt, appending the pepper when set.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if c.Pepper != "" {
		pw += c.Pepper
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether a password matches a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	if c.Pepper != "" {
		pw += c.Pepper
	}

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw)) == nil
}
