// Duetrack - a command-line deadline tracker.
package main

import (
	"os"

	"github.com/duetrack/duetrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
