package main

import (
	"os"

	"github.com/theta-lang/thetac/cmd/thetac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
