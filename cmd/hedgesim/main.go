package main

import (
	"os"

	"github.com/rustyeddy/hedgesim/cmd/hedgesim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
