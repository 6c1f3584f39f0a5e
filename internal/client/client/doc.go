// Package client contains the client side of the PromiseKeeper gRPC API.
//
// Client is the transport-agnostic contract used by the CLI; GRPCClient
// implements it over promisekeeper.v1.PromiseService. Every call carries an
// x-request-id so client and server logs can be correlated, and gRPC status
// codes are mapped to the sentinel errors ErrUnavailable, ErrNotFound and
// ErrRejected, which callers match with errors.Is.
package client
