package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Forfeit(ctx context.Context, args []string) error
	Reframe(ctx context.Context, args []string) error
}

const helpText = "Available commands: (l)ist, add, done <id>, forfeit <id>, reframe [id], help, exit"

// runREPL starts a simple read–eval–print loop for the PromiseKeeper CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'; commands share reader for their own prompts.
// The loop exits on EOF or when the user types "exit" or "quit". A nil
// statusFn suppresses the prompt, which is used when stdin is not a terminal.
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if statusFn != nil {
			fmt.Printf("pk %s> ", statusFn())
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "done":
			cmdErr = a.Done(ctx, args)

		case "forfeit":
			cmdErr = a.Forfeit(ctx, args)

		case "reframe":
			cmdErr = a.Reframe(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", userMessage(cmdErr))
		}
	}
}
