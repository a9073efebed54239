package main

import (
	"os"

	"github.com/depscout/depscout/cmd/depscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
