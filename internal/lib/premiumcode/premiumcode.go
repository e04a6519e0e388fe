// Package premiumcode mints premium activation codes: a fixed prefix
// followed by eight upper-case hex characters taken from a fresh UUID.
package premiumcode

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix is the fixed brand prefix of every activation code.
const Prefix = "BELUX"

// suffixLen is the number of hex characters appended to the prefix.
const suffixLen = 8

// New returns a freshly minted activation code. Uniqueness is
// probabilistic; callers inserting into storage retry on collision.
func New() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return Prefix + strings.ToUpper(hex[:suffixLen])
}

// Normalize upper-cases and trims a user-supplied code before lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
