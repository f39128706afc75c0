// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// IdentityAllowlist is the read-only set of student IDs permitted to register.
type IdentityAllowlist interface {
	// Contains reports whether studentID may register.
	Contains(studentID string) bool
}
