package auth

import "crypto/subtle"

// CanModify reports whether the requesting principal owns a resource. Both
// values are opaque identity strings: the author snapshot captured at
// creation time and the principal resolved from the current request's
// credential. This is a pure comparison; user state is never re-resolved.
func CanModify(author, principal string) bool {
	if author == "" || principal == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(author), []byte(principal)) == 1
}
