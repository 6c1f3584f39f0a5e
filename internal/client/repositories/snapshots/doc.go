// Package snapshots keeps the last server replies the CLI has seen in a
// local SQLite file, so read-only commands still have something to show
// while the server is unreachable.
//
// Values are opaque bytes (the CLI stores JSON); each row remembers when it
// was saved so the caller can tell the user how stale it is.
package snapshots
