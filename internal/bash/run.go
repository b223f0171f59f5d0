package bash

import (
	"context"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// RunScriptFromReader parses and executes the shell script read from r,
// using name as the parser's source name for error messages.
func RunScriptFromReader(ctx context.Context, runner *interp.Runner, r io.Reader, name string) error {
	file, err := syntax.NewParser(syntax.KeepComments(true)).Parse(r, name)
	if err != nil {
		return err
	}
	return runner.Run(ctx, file)
}

// RunScriptFromFile parses and executes the shell script at path.
func RunScriptFromFile(ctx context.Context, runner *interp.Runner, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return RunScriptFromReader(ctx, runner, f, path)
}

// RunCommand parses and executes a single line of shell source. Capturing
// whatever it writes to stdout and stderr is the caller's responsibility,
// via the runner's configured I/O; RunCommand just drives the parse-and-run
// step.
func RunCommand(ctx context.Context, runner *interp.Runner, line string) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return err
	}
	return runner.Run(ctx, file)
}
