// Package shell implements the interactive read, parse, dispatch loop.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/abiosoft/readline"
	"github.com/mattn/go-isatty"

	"github.com/minish-sh/minish/core/config"
	"github.com/minish-sh/minish/core/logger"
	"github.com/minish-sh/minish/core/token"
)

// Continuation tells the loop driver whether to keep going after a
// dispatched command.
type Continuation int

const (
	Continue Continuation = iota
	Terminate
)

// Shell drives one interactive session over a pair of I/O streams.
type Shell struct {
	cfg   *config.Configuration
	audit *logger.Audit

	stdin  io.ReadCloser
	stdout io.Writer
	stderr io.Writer
	isTTY  bool
}

// Options configures the streams a Shell reads and writes. Zero values
// fall back to the process's own standard streams.
type Options struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
	Audit  *logger.Audit
}

func New(cfg *config.Configuration, opts Options) *Shell {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Audit == nil {
		opts.Audit = logger.Nop()
	}

	isTTY := false
	if f, ok := opts.Stdout.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd())
	}

	return &Shell{
		cfg:    cfg,
		audit:  opts.Audit,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		isTTY:  isTTY,
	}
}

// Run drives the interactive loop until the exit builtin runs or the
// input stream is closed. The loop itself always ends successfully;
// command failures only ever affect the current cycle.
func (s *Shell) Run() error {
	rl, err := s.newReadline()
	if err != nil {
		return err
	}
	defer rl.Close()

	if s.cfg.Motd != "" {
		fmt.Fprintln(s.stdout, s.cfg.Motd)
	}

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			// Closed input ends the session like an explicit exit.
			return nil

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			log.Printf("readline: %v", err)
			continue
		}

		if s.dispatch(token.Split(line)) == Terminate {
			return nil
		}
	}
}

func (s *Shell) newReadline() (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.stdin),
		Stdout: s.stdout,
		Stderr: s.stderr,

		// The interpreter keeps no command history.
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,

		FuncIsTerminal: func() bool {
			return s.isTTY
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// dispatch runs one tokenized command line. Empty input is a no-op
// cycle that keeps the loop going.
func (s *Shell) dispatch(args []string) Continuation {
	if len(args) == 0 {
		return Continue
	}

	if builtin, ok := Lookup(args[0]); ok {
		start := time.Now()
		cont := builtin.Main(s, args)
		s.audit.Builtin(args, time.Since(start))
		return cont
	}

	return s.launch(args)
}

// prompt renders the configured prompt string, substituting \u, \h, \w
// and \$ the way login shells do.
func (s *Shell) prompt() string {
	prompt := s.cfg.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}

	prompt = strings.ReplaceAll(prompt, `\u`, username())
	host, _ := os.Hostname()
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd, _ := os.Getwd()
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

func username() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
