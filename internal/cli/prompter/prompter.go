// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/gaucho-cli/gaucho/internal/cli/display"
)

type Prompter interface {
	Confirm(prompt string) (bool, error)
}

type BasicPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewBasicPrompter(in io.Reader, out io.Writer) *BasicPrompter {
	return &BasicPrompter{in: in, out: out}
}

// Confirm only accepts an explicit Y.
func (p *BasicPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s %s ", prompt, display.Grey("(Y):"))

	response, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(response) == "Y", nil
}

// Interactive reports whether somebody can answer a prompt on stdin.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
