package main

import (
	"os"

	"github.com/abhisek/slopeshowdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
