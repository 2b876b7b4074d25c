package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user simple questions on a terminal.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(in),
		writer: out,
	}
}

// Confirm asks a yes/no question. An empty answer picks defaultYes; any
// other answer is asked again.
func (p *Prompter) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" "+hint)); err != nil {
			return false, err
		}

		answer, err := p.reader.ReadLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning("Please answer y or n.")); err != nil {
			return false, err
		}
	}
}

// Ask reads a free-form answer. An empty answer returns def.
func (p *Prompter) Ask(ctx context.Context, question, def string) (string, error) {
	label := question
	if def != "" {
		label += " (" + def + ")"
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", err
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
