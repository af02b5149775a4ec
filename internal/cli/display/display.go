// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gaucho-cli/gaucho"
)

var banner = LightBlue(Banner)

func PrintBanner() {
	fmt.Println(strings.Replace(banner, "version", gaucho.Version, 1))
}

func Success(msg string) {
	fmt.Print(Green(fmt.Sprintf("%s\n", msg)))
}

func Warning(msg string) {
	fmt.Fprint(os.Stderr, Gold(fmt.Sprintf("Warning: %s\n", msg)))
}

func Error(msg string) {
	fmt.Fprint(os.Stderr, Red(fmt.Sprintf("Error: %s\n", msg)))
}

// Hint prints a grey follow-up suggestion, e.g. the command that undoes or
// completes what was just done.
func Hint(w io.Writer, msg string, command string) {
	fmt.Fprintf(w, "\n%s\n\n  %s\n", msg, Grey(Tool+" ")+LightBlue(command))
}
