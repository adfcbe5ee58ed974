package main

import (
	"os"

	"github.com/jjl/ivar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
