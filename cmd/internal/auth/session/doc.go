// Package session issues and validates the stateless bearer tokens handed out at login.
//
// A Service binds one token.Codec (compact HMAC or JWT) to the configured secret and TTL.
// Nothing is persisted: logout is a client-side discard and a token stays valid until it expires.
package session
