// Package shell provides the interactive devkit REPL.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

// CommandRunner executes a devkit command and returns its output.
// This is set by the cmd package to avoid import cycles.
type CommandRunner func(ctx context.Context, args []string, stdout, stderr io.Writer) error

// DefaultRunner is the command runner used by the shell session.
var DefaultRunner CommandRunner

// Session manages an interactive devkit shell session.
type Session struct {
	// DefaultInput and DefaultSheet are added to excel commands that don't
	// name an input file or sheet themselves.
	DefaultInput string
	DefaultSheet string

	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string

	Out io.Writer
	Err io.Writer
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	histFile := filepath.Join(home, ".devkit", "shell_history")

	if err := os.MkdirAll(filepath.Dir(histFile), 0755); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", filepath.Dir(histFile), err)
	}

	return &Session{
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"excel", "batch", "jsonfmt", "md5", "pipeline",
			"config", "completion", "version", "shell",
			"help", "exit", "quit", "history", "set",
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	completer := readline.NewPrefixCompleter(s.buildCompleter()...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "devkit> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(s.Out, "devkit interactive shell")
	fmt.Fprintln(s.Out, "Type 'help' for commands, 'exit' to quit.")
	fmt.Fprintln(s.Out)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if s.handleLine(ctx, line) {
			return nil
		}
	}

	return nil
}

// handleLine processes one input line and reports whether the session should end.
func (s *Session) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	s.CommandHistory = append(s.CommandHistory, line)

	switch {
	case line == "exit" || line == "quit":
		elapsed := time.Since(s.StartTime)
		fmt.Fprintf(s.Out, "\nSession ended. %d commands run in %s.\n",
			len(s.CommandHistory)-1, formatDuration(elapsed))
		return true
	case line == "help":
		s.printHelp()
	case line == "history":
		for i, cmd := range s.CommandHistory {
			fmt.Fprintf(s.Out, "  %d  %s\n", i+1, cmd)
		}
	case strings.HasPrefix(line, "set input "):
		s.DefaultInput = strings.TrimSpace(strings.TrimPrefix(line, "set input "))
		fmt.Fprintf(s.Out, "Default input: %s\n", s.DefaultInput)
	case strings.HasPrefix(line, "set sheet "):
		s.DefaultSheet = strings.TrimSpace(strings.TrimPrefix(line, "set sheet "))
		fmt.Fprintf(s.Out, "Default sheet: %s\n", s.DefaultSheet)
	default:
		output, err := s.Eval(ctx, line)
		if output != "" {
			fmt.Fprint(s.Out, output)
			if !strings.HasSuffix(output, "\n") {
				fmt.Fprintln(s.Out)
			}
		}
		if err != nil {
			fmt.Fprintf(s.Err, "Error: %s\n", err)
		}
	}
	return false
}

// Eval runs a single command string and returns its output.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	if DefaultRunner == nil {
		return "", fmt.Errorf("shell runner not configured")
	}

	args, err := SplitArgs(command)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	args = s.withDefaults(args)

	var stdout, stderr bytes.Buffer
	err = DefaultRunner(ctx, args, &stdout, &stderr)

	output := stdout.String()
	s.LastOutput = output

	if errOut := stderr.String(); errOut != "" && err != nil {
		return output, fmt.Errorf("%s", strings.TrimSpace(errOut))
	}

	return output, err
}

// withDefaults inserts the session's default input and sheet into excel commands.
func (s *Session) withDefaults(args []string) []string {
	if args[0] != "excel" {
		return args
	}
	out := []string{args[0]}
	if s.DefaultInput != "" && !hasFlag(args, "-i", "--input") {
		out = append(out, "--input", s.DefaultInput)
	}
	if s.DefaultSheet != "" && !hasFlag(args, "-s", "--sheet-name") {
		out = append(out, "--sheet-name", s.DefaultSheet)
	}
	return append(out, args[1:]...)
}

func hasFlag(args []string, short, long string) bool {
	for _, a := range args {
		if a == short || a == long || strings.HasPrefix(a, long+"=") {
			return true
		}
	}
	return false
}

// SplitArgs splits a command line into arguments. Single and double quotes
// group words; quotes are removed from the result.
func SplitArgs(line string) ([]string, error) {
	var (
		args   []string
		cur    strings.Builder
		inWord bool
		quote  rune
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in %q", quote, line)
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.KnownCommands
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	// top-level command
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		prefix := parts[0]
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	parent := parts[0]
	last := parts[len(parts)-1]
	if strings.HasPrefix(last, "-") {
		return s.flagsFor(parent)
	}

	subcommands := s.subcommandsFor(parent)
	if len(parts) == 2 && !strings.HasSuffix(input, " ") {
		prefix := parts[1]
		var matches []string
		for _, sub := range subcommands {
			if strings.HasPrefix(sub, prefix) {
				matches = append(matches, sub)
			}
		}
		return matches
	}

	return nil
}

func (s *Session) subcommandsFor(parent string) []string {
	subs := map[string][]string{
		"excel":      {"count", "cat", "to-csv", "split", "watch"},
		"pipeline":   {"run"},
		"config":     {"show", "path", "get", "set"},
		"completion": {"bash", "zsh", "fish", "powershell"},
		"set":        {"input", "sheet"},
	}
	return subs[parent]
}

func (s *Session) flagsFor(parent string) []string {
	switch parent {
	case "excel":
		return []string{"--input", "--sheet-name", "--row", "--column", "--output", "--encoding", "--line", "--header", "--no-clobber", "--trailing-tab", "--json"}
	case "batch":
		return []string{"--action", "--sheet-name", "--out-dir", "--line", "--header", "--concurrency", "--json"}
	case "jsonfmt":
		return []string{"--json", "--file"}
	case "md5":
		return []string{"--ostr", "--upper", "--is16"}
	}
	return []string{"--json", "--verbose", "--help"}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, "Available commands:")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "  Sheets:     excel count/cat/to-csv/split/watch, batch, pipeline run")
	fmt.Fprintln(s.Out, "  Text:       jsonfmt, md5")
	fmt.Fprintln(s.Out, "  System:     config, completion, version")
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "Shell commands:")
	fmt.Fprintln(s.Out, "  help               show this help")
	fmt.Fprintln(s.Out, "  history            show command history")
	fmt.Fprintln(s.Out, "  set input <path>   default --input for excel commands")
	fmt.Fprintln(s.Out, "  set sheet <name>   default --sheet-name for excel commands")
	fmt.Fprintln(s.Out, "  exit               exit the shell")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		subs := s.subcommandsFor(cmd)
		if len(subs) > 0 {
			var subItems []readline.PrefixCompleterInterface
			for _, sub := range subs {
				subItems = append(subItems, readline.PcItem(sub))
			}
			items = append(items, readline.PcItem(cmd, subItems...))
		} else {
			items = append(items, readline.PcItem(cmd))
		}
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
