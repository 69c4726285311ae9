// Package prompt asks the user yes/no questions.
//
// Callers depend on ConfirmFunc only, so tests and non-interactive runs can
// inject a fixed decision instead of reading standard input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// ConfirmFunc asks question and reports whether the user agreed.
type ConfirmFunc func(question string) (bool, error)

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace. Everything else, including an empty answer, is a no.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Always returns a ConfirmFunc that answers decision without asking.
func Always(decision bool) ConfirmFunc {
	return func(string) (bool, error) {
		return decision, nil
	}
}

// NewLineConfirmer writes the question and "[y/N]" to w and reads one line from r.
// End of input counts as a no.
func NewLineConfirmer(r io.Reader, w io.Writer) ConfirmFunc {
	reader := bufio.NewReader(r)
	return func(question string) (bool, error) {
		if _, err := fmt.Fprintf(w, "%s [y/N] ", question); err != nil {
			return false, fmt.Errorf("write prompt: %w", err)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		return IsAffirmative(line), nil
	}
}

// NewTerminalConfirmer returns a promptui-backed confirmer when stdin is a
// terminal, and a plain line reader on stdin otherwise (pipes, CI).
func NewTerminalConfirmer() ConfirmFunc {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return NewLineConfirmer(os.Stdin, os.Stdout)
	}
	return promptuiConfirm
}

// promptuiConfirm uses a free-text prompt rather than promptui's IsConfirm,
// which only accepts a bare "y".
func promptuiConfirm(question string) (bool, error) {
	p := promptui.Prompt{
		Label: question + " [y/N]",
	}

	answer, err := p.Run()
	switch {
	case errors.Is(err, promptui.ErrEOF):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, fmt.Errorf("prompt interrupted: %w", err)
	case err != nil:
		return false, fmt.Errorf("prompt: %w", err)
	}
	return IsAffirmative(answer), nil
}
