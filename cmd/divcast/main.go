package main

import (
	"os"

	"github.com/dividendlab/divcast/cmd/divcast/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
