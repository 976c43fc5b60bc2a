// Package logger writes the append-only command audit trail.
//
// Every dispatched command becomes one JSON line so the log can be
// processed with standard line-oriented tools.
package logger

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Audit records dispatched commands.
type Audit struct {
	log zerolog.Logger
}

// NewAudit returns an audit log writing JSON lines to w.
func NewAudit(w io.Writer) *Audit {
	return &Audit{
		log: zerolog.New(w).With().Timestamp().Str("app", "minish").Logger(),
	}
}

// Nop returns an audit log that discards everything.
func Nop() *Audit {
	return &Audit{log: zerolog.Nop()}
}

// Builtin records a builtin invocation.
func (a *Audit) Builtin(argv []string, d time.Duration) {
	a.log.Info().
		Str("kind", "builtin").
		Strs("argv", argv).
		Dur("duration", d).
		Msg("command")
}

// Exec records a completed external command. The state string is the
// OS's description of how the child ended, e.g. "exit status 1" or
// "signal: killed".
func (a *Audit) Exec(argv []string, exitCode int, state string, d time.Duration) {
	a.log.Info().
		Str("kind", "exec").
		Strs("argv", argv).
		Int("exit_code", exitCode).
		Str("state", state).
		Dur("duration", d).
		Msg("command")
}

// ExecError records an external command that could not be started.
func (a *Audit) ExecError(argv []string, err error) {
	a.log.Warn().
		Str("kind", "exec").
		Strs("argv", argv).
		Err(err).
		Msg("command failed to start")
}

// Entry is one decoded audit log record.
type Entry struct {
	Time     time.Time `json:"time"`
	Level    string    `json:"level"`
	Kind     string    `json:"kind"`
	Argv     []string  `json:"argv"`
	ExitCode *int      `json:"exit_code,omitempty"`
	State    string    `json:"state,omitempty"`
	Error    string    `json:"error,omitempty"`
	Message  string    `json:"message"`
}

// ReadLog parses a newline delimited JSON audit log.
func ReadLog(r io.Reader, handler func(e *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return err
		}
		handler(&entry)
	}
	return nil
}
