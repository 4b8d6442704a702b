// Package token issues and verifies the bearer tokens sixcities hands out at login.
//
// Two interchangeable profiles implement Codec:
//   - HMACCodec: "<base64url(payload-json)>.<base64url(HMAC-SHA256(secret, payload-segment))>"
//     with payload keys subjectId, email and exp (Unix seconds).
//   - JWTCodec: an HS256 JWT. The verifier accepts HS256 only.
//
// Verification is a pure computation over the token bytes, the secret and the caller's clock.
// The server keeps no token state. Every failure satisfies errors.Is(err, ErrInvalidToken);
// the wrapped reason exists for logs only and must not reach HTTP clients.
//
// Environment:
// - SIXCITIES_AUTH_SECRET: signing secret. It must not equal the password pepper.
package token
