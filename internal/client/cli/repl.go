package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUnknownCommand is returned by dispatch for a name it does not know.
var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	help() []string
	dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL starts a simple read–eval–print loop for the TrustCart shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments, and dispatches to 'a'. Unknown
// commands are reported back to the user. The loop exits on scanner EOF,
// when the user types "exit" or "quit", or when ctx is cancelled.
//
// The prompt shows the current status (from statusFn). "help" lists the
// commands available to the current user.
//
// Errors returned by command handlers are not printed here; handlers report
// through notifications and inline messages. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("trustcart %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			for _, line := range a.help() {
				printlnFn(line)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if err := a.dispatch(ctx, cmd, args); errors.Is(err, errUnknownCommand) {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}
