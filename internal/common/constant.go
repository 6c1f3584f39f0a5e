// Package common contains shared constants and sentinel errors used across
// PromiseKeeper components.
package common

// RequestIDHeaderName is the HTTP header and gRPC metadata key carrying the
// request correlation id.
const RequestIDHeaderName = "x-request-id"

// DefaultFingerprintAlgorithm is the digest used for promise fingerprints
// unless configured otherwise.
const DefaultFingerprintAlgorithm = "sha256"
