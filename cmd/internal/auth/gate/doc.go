// Package gate authenticates inbound requests from an "Authorization: Bearer <token>" header.
//
// Each request walks the same stages: extract the token, verify it with the configured codec,
// then resolve the subject through an identity.UserLookup. The required policy answers 401 at the
// first failed stage; the optional policy lets the request through without an identity. Both
// policies share one authentication routine and differ only in what they do with its outcome.
//
// Rejections are indistinguishable to clients: same status, same body, whatever stage failed.
// The stage is logged, the token never is.
package gate
