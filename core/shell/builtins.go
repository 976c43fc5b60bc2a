package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
)

// Builtin is a command implemented inside the interpreter itself.
type Builtin struct {
	// Name the builtin is dispatched under.
	Name string
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description shown by help.
	Short string

	Main func(s *Shell, args []string) Continuation
}

// builtins lists every builtin in help display order.
var builtins []Builtin

var builtinIndex map[string]*Builtin

func init() {
	builtins = []Builtin{
		{
			Name:  "cd",
			Use:   "cd DIR",
			Short: "Change the working directory.",
			Main:  builtinCd,
		},
		{
			Name:  "help",
			Use:   "help",
			Short: "Show this list of builtin commands.",
			Main:  builtinHelp,
		},
		{
			Name:  "exit",
			Use:   "exit",
			Short: "Leave the shell.",
			Main:  builtinExit,
		},
	}
	builtinIndex = make(map[string]*Builtin, len(builtins))
	for i := range builtins {
		builtinIndex[builtins[i].Name] = &builtins[i]
	}
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (*Builtin, bool) {
	builtin, ok := builtinIndex[name]
	return builtin, ok
}

// Builtins returns every builtin in help display order.
func Builtins() []Builtin {
	return builtins
}

func (b *Builtin) printHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, b.Use)
	fmt.Fprintln(w, b.Short)
}

func builtinCd(s *Shell, args []string) Continuation {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintf(s.stderr, "minish: cd: %v\n", err)
		return Continue
	}
	if *helpOpt {
		builtinIndex["cd"].printHelp(s.stdout)
		return Continue
	}

	switch rest := opts.Args(); len(rest) {
	case 0:
		fmt.Fprintln(s.stderr, `minish: expected argument to "cd"`)
	case 1:
		if err := os.Chdir(rest[0]); err != nil {
			fmt.Fprintf(s.stderr, "minish: %v\n", err)
		}
	default:
		fmt.Fprintln(s.stderr, "minish: cd: too many arguments")
	}

	return Continue
}

var colorTitle = color.New(color.FgGreen, color.Bold)

func builtinHelp(s *Shell, args []string) Continuation {
	w := s.stdout
	fmt.Fprintln(w, s.colorize(colorTitle, "minish")+", a minimal command interpreter.")
	fmt.Fprintln(w, "Type program names and arguments, then press enter.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The following commands are built in:")
	for _, b := range Builtins() {
		fmt.Fprintf(w, "  %-6s %s\n", b.Name, b.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use the man command for information on other programs.")

	return Continue
}

// builtinExit stops the loop. Arguments are ignored.
func builtinExit(s *Shell, args []string) Continuation {
	return Terminate
}

func (s *Shell) colorize(c *color.Color, str string) string {
	if s.isTTY {
		return c.Sprint(str)
	}
	return str
}
