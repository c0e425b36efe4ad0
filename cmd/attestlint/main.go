package main

import (
	"os"

	"github.com/majorcontext/attestlint/cmd/attestlint/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
