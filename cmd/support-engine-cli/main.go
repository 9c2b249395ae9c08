package main

import (
	"os"

	"github.com/hantec-labs/support-engine/cmd/support-engine-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
