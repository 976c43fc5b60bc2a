package shell

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// launch spawns args as an external program and blocks until the child
// has actually terminated. Wait only returns once the child has exited
// or been killed by a signal; a stopped or traced child does not end
// the wait, so no zombie can survive the cycle. The child's status is
// recorded but never stops the loop.
func (s *Shell) launch(args []string) Continuation {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	start := time.Now()
	err := cmd.Run()

	var exitErr *exec.ExitError
	var execErr *exec.Error

	switch {
	case err == nil:
		s.audit.Exec(args, 0, cmd.ProcessState.String(), time.Since(start))

	case errors.As(err, &exitErr):
		// The child ran and ended with a nonzero status or a signal.
		s.audit.Exec(args, exitErr.ExitCode(), exitErr.ProcessState.String(), time.Since(start))

	case errors.As(err, &execErr):
		// Resolution failed, no child was created.
		fmt.Fprintf(s.stderr, "minish: %s: %v\n", execErr.Name, execErr.Err)
		s.audit.ExecError(args, err)

	default:
		// Process creation itself failed.
		fmt.Fprintf(s.stderr, "minish: %s: %v\n", args[0], err)
		s.audit.ExecError(args, err)
	}

	return Continue
}
