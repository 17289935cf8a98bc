package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	// backToken typed at any prompt returns to the previous wizard step.
	backToken = ":back"
	// clearToken empties a text field that already has a value.
	clearToken = "-"
)

var (
	errBack        = errors.New("back to previous step")
	errInputClosed = errors.New("input closed before the wizard finished")
)

// prompter reads answers line by line. Prompts go to out, which the
// commands point at stderr so stdout only carries the result.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// text asks for a string. An empty answer keeps current and clearToken
// empties it.
func (p *prompter) text(label, current string) (string, error) {
	answer, err := p.ask(label, current)
	if err != nil {
		return "", err
	}
	if answer == clearToken {
		return "", nil
	}
	return answer, nil
}

func (p *prompter) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == backToken {
		return "", errBack
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// number asks until the answer parses as a finite float. An empty answer
// keeps current.
func (p *prompter) number(label string, current float64) (float64, error) {
	for {
		answer, err := p.ask(label, strconv.FormatFloat(current, 'f', -1, 64))
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
		fmt.Fprintf(p.out, "  %q is not a number\n", answer)
	}
}

// confirm asks a yes/no question. An empty answer means def.
func (p *prompter) confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s ", question, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case backToken:
			return false, errBack
		}
		fmt.Fprintln(p.out, "  please answer y or n")
	}
}
