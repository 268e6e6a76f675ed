package main

import (
	"os"

	"github.com/alanmeadows/gh-pr-comments/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
