package main

import (
	"os"

	"github.com/dryack/gDiceTable/cmd/roll/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
