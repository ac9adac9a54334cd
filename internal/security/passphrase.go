package security

import "crypto/subtle"

// CheckPassphrase compares a submitted admin passphrase against the
// configured one in constant time. An empty configured passphrase
// disables the admin surface entirely.
func CheckPassphrase(submitted, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(configured)) == 1
}
