package main

import (
	"os"

	"github.com/kazushi-tech/specforge/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
