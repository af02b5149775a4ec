// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package main

import (
	"github.com/gaucho-cli/gaucho/internal/cli"
	"github.com/gaucho-cli/gaucho/internal/logging"
)

func main() {
	logging.SetupInitialLogging()
	cli.Start()
}
