package main

import (
	"os"

	"github.com/2beens/barbellviz/cmd/platecalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
