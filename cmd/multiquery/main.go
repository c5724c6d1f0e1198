// Command multiquery sends a prompt to Gemini or OpenAI and prints the result
// as a JSON envelope.
//
//	multiquery --model gemini --prompt "Analyze this architecture..."
//	multiquery --model openai --prompt "Suggest an implementation..." --role "You are a backend expert"
//	multiquery --check
//	multiquery mcp
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit status: 0 on
// any completed check or query, 2 on usage errors, 1 on setup failures.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "%s\nerror: %v\n", cmd.UsageString(), err)
		return 2
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// usageError marks a command line the user has to fix. It is reported with
// the usage text and exit status 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
