// Package identity holds the sixcities user model and the stores that persist it.
//
// Stores implement UserStore and report failures with the kinds in kinds.go
// (ErrNotFound, ErrConflict, ErrInvalidInput) so HTTP and auth layers can map them
// without knowing the backend. Password digests are opaque bytes produced by Credentials.
package identity
