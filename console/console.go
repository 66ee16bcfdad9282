// Package console is the line-oriented front end of the command tree: each
// submitted line is tokenized and dispatched, and the report is printed.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/clems4ever/cmdtree/cmdtree"
	"github.com/clems4ever/cmdtree/config"
	"github.com/clems4ever/cmdtree/tokenizer"
)

// ExitMessage is printed when the quit command is entered.
const ExitMessage = "Exit console.\n"

// Result is the outcome of one submitted line.
type Result struct {
	Text string
	Quit bool
	Err  error
}

// Styles renders the prompt and single-line failures.
type Styles struct {
	Prompt lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles colors the prompt and failures for a terminal.
func DefaultStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// PlainStyles renders everything unchanged.
func PlainStyles() Styles {
	return Styles{Prompt: lipgloss.NewStyle(), Error: lipgloss.NewStyle()}
}

// Session dispatches console lines against a registry.
type Session struct {
	reg    *cmdtree.Registry
	cfg    config.ConsoleConfig
	tok    *tokenizer.Tokenizer
	logger *zap.Logger
	styles Styles
}

// NewSession returns a session over reg. A nil logger discards diagnostics.
func NewSession(reg *cmdtree.Registry, cfg config.ConsoleConfig, logger *zap.Logger, styles Styles) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		reg:    reg,
		cfg:    cfg,
		tok:    tokenizer.NewTokenizer(cfg.MaxTokens),
		logger: logger,
		styles: styles,
	}
}

// Handle processes one submitted line. Blank lines produce nothing, the quit
// command ends the session, other lines starting with "/" are console
// commands this session does not know, and everything else is dispatched.
func (s *Session) Handle(line string) Result {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Result{}
	case strings.HasPrefix(trimmed, s.cfg.QuitCommand):
		return Result{Text: ExitMessage, Quit: true}
	case strings.HasPrefix(trimmed, "/"):
		return Result{
			Text: fmt.Sprintf("Unrecognized command: %s\n", trimmed),
			Err:  fmt.Errorf("unrecognized console command %q", trimmed),
		}
	}

	tokens, truncated := s.tok.Split(line)
	if truncated {
		s.logger.Warn("command line truncated",
			zap.Int("maxTokens", s.tok.MaxTokens()),
			zap.String("line", line))
	}

	rep := s.reg.Dispatch(tokens, s.cfg.BufferSize)
	if rep.Err != nil {
		s.logger.Debug("dispatch fell back to usage message",
			zap.Strings("tokens", tokens),
			zap.Error(rep.Err))
	}
	return Result{Text: rep.Text, Err: rep.Err}
}

// Run reads lines from in until EOF, the quit command, or ctx is done,
// writing a prompt before each line and the result after it.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, s.styles.Prompt.Render(s.cfg.Prompt)); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		res := s.Handle(scanner.Text())
		if err := s.write(out, res); err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
	}
}

func (s *Session) write(w io.Writer, res Result) error {
	if res.Text == "" {
		return nil
	}
	text := res.Text
	// Listings span lines and are never styled; single-line failures are.
	if res.Err != nil && strings.Count(text, "\n") <= 1 {
		text = s.styles.Error.Render(strings.TrimSuffix(text, "\n")) + "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// Transcript feeds lines through a plain session and returns what a user
// would have seen, each line echoed after the prompt. It stops at the quit
// command.
func Transcript(reg *cmdtree.Registry, cfg config.ConsoleConfig, lines []string) string {
	s := NewSession(reg, cfg, nil, PlainStyles())
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(cfg.Prompt + line + "\n")
		res := s.Handle(line)
		b.WriteString(res.Text)
		if res.Quit {
			break
		}
	}
	return b.String()
}

// Replay builds the registry described by cfg and returns the transcript of
// the lines read from script.
func Replay(cfg *config.Config, script io.Reader) (string, error) {
	reg, err := NewRegistry(cfg, nil)
	if err != nil {
		return "", err
	}

	var lines []string
	scanner := bufio.NewScanner(script)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return Transcript(reg, cfg.Console, lines), nil
}
