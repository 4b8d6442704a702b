// Package password derives and verifies credential digests for sixcities.
//
// Digests are Argon2id outputs keyed by a single server-wide pepper:
//   - Derive is deterministic, so verification recomputes the digest and compares bytes.
//   - Equal compares in constant time after a single length check.
//   - Parameters are part of the stored digest's identity; changing them invalidates every stored digest.
//
// Known limitation: there is no per-user salt. The pepper is the only salt input, so two accounts with
// the same password carry the same digest. This is accepted for compatibility with existing user records.
package password
