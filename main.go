package main

import (
	"os"

	"github.com/glbter/capstone/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
