// Command schoolconsole is the administrative console for the school platform.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/rshade/schoolconsole/internal/cli"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/repository"
	"github.com/rshade/schoolconsole/internal/validate"
	"github.com/rshade/schoolconsole/pkg/version"
)

// Exit codes.
const (
	exitError   = 1
	exitRefused = 2
	exitBackend = 3
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var (
		httpErr *repository.HTTPError
		verrs   validate.Errors
	)
	switch {
	case errors.As(err, &httpErr):
		return exitBackend
	case errors.As(err, &verrs),
		errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrNotEditable):
		return exitRefused
	default:
		return exitError
	}
}

func main() {
	if err := run(); err != nil {
		os.Exit(exitCode(err))
	}
}
