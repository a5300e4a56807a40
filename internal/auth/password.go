package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Passwords decides how passwords are stored and compared. The zero value
// stores them as given and compares them byte for byte.
type Passwords struct {
	Hash bool
}

// Prepare returns the form of password that gets stored on the user record.
func (p Passwords) Prepare(password string) (string, error) {
	if !p.Hash {
		return password, nil
	}
	return HashPassword(password)
}

// Match reports whether plain matches the stored password.
func (p Passwords) Match(stored, plain string) bool {
	if !p.Hash {
		return stored == plain
	}
	return CheckPasswordHash(plain, stored)
}

// HashPassword hashes the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash checks if the password matches the hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
