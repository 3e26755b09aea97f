// Package menu implements the interactive text interface of the shop: a
// prompt/validate/retry reader and the per-role navigation trees.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ErrInputClosed is returned when the input stream ends mid-dialog.
var ErrInputClosed = errors.New("input closed")

const maxInputLength = 255

// IntCheck is one validation rule for a numeric prompt; Msg is shown to the
// user when OK fails and the prompt repeats.
type IntCheck struct {
	OK  func(int) bool
	Msg string
}

type FloatCheck struct {
	OK  func(float64) bool
	Msg string
}

// Prompter reads validated input line by line. Invalid input prints the
// violated constraint and asks again; only a closed stream aborts.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *Prompter) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Prompter) Success(format string, args ...any) {
	fmt.Fprintln(p.out, color.GreenString(format, args...))
}

func (p *Prompter) Info(format string, args ...any) {
	fmt.Fprintln(p.out, color.BlueString(format, args...))
}

func (p *Prompter) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, color.YellowString(format, args...))
}

func (p *Prompter) Fail(format string, args ...any) {
	fmt.Fprintln(p.out, color.RedString(format, args...))
}

// Choice shows a menu and reads one of the allowed numeric options.
func (p *Prompter) Choice(prompt string, allowed ...int) (int, error) {
	p.Say("%s", prompt)
	for {
		raw, err := p.readLine("Enter your choice: ")
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(raw)
		if err != nil || !containsInt(allowed, n) {
			p.Fail("Expected one of the options %v, got %q instead. Try again!", allowed, raw)
			continue
		}
		return n, nil
	}
}

// Int reads an integer passing every check, re-prompting on violations.
func (p *Prompter) Int(label string, checks ...IntCheck) (int, error) {
	for {
		raw, err := p.readLine(fmt.Sprintf("Enter your %s: ", label))
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			p.Fail("Expected input is integer, got %q instead. Please, try again!", raw)
			continue
		}

		if msg, ok := firstFailedInt(checks, n); !ok {
			p.Fail("%s", msg)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) Float(label string, checks ...FloatCheck) (float64, error) {
	for {
		raw, err := p.readLine(fmt.Sprintf("Enter your %s: ", label))
		if err != nil {
			return 0, err
		}

		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.Fail("Expected input is a number, got %q instead. Please, try again!", raw)
			continue
		}

		if msg, ok := firstFailedFloat(checks, f); !ok {
			p.Fail("%s", msg)
			continue
		}
		return f, nil
	}
}

// String reads a non-blank line of at most 255 characters.
func (p *Prompter) String(label string) (string, error) {
	for {
		raw, err := p.readLine(fmt.Sprintf("Enter your %s: ", label))
		if err != nil {
			return "", err
		}
		if raw == "" {
			p.Fail("You can't leave this field blank. Please, try again!")
			continue
		}
		return raw, nil
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
		}
		return "", ErrInputClosed
	}

	raw := strings.TrimSpace(p.in.Text())
	if len(raw) > maxInputLength {
		p.Fail("Maximum input length exceeded! Please, try again!")
		return p.readLine(prompt)
	}
	return raw, nil
}

func containsInt(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}

func firstFailedInt(checks []IntCheck, n int) (string, bool) {
	for _, c := range checks {
		if !c.OK(n) {
			return c.Msg, false
		}
	}
	return "", true
}

func firstFailedFloat(checks []FloatCheck, f float64) (string, bool) {
	for _, c := range checks {
		if !c.OK(f) {
			return c.Msg, false
		}
	}
	return "", true
}
