// Package cli provides the interactive PromiseKeeper command-line client.
//
// It connects to the server over gRPC, watches server health in the
// background and runs a REPL:
//
//	list              show active promises, the missed one and the score
//	add               make a promise, optionally drafted by the collaborator
//	done <id>         mark a promise kept
//	forfeit <id>      give up on a promise
//	reframe [id]      turn the missed promise into a new one
//	help, exit
//
// While the server is unreachable, list shows the last dashboard saved in
// the local snapshot store; other commands fail until it is back.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
