package users

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUsername trims whitespace and applies NFC so visually identical
// usernames hash to the same key. Both registration and login must pass
// input through here before touching the store, or the uniqueness check
// can be bypassed with a decomposed form.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}
