package main

import (
	"os"

	"github.com/aegooby/goat/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
