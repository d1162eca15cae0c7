// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/logging"
)

func main() {
	logging.SetupInitialLogging()
	cli.Start()
}
