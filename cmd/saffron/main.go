package main

import (
	"os"

	"github.com/henry232323/saffron-lang/cmd/saffron/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
