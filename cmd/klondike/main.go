package main

import (
	"os"

	"github.com/youngZwiebelandtheGemuseBeat/klondike/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
