package main

import (
	"os"

	"github.com/msto63/relativity/cmd/relativity/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
