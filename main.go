package main

import (
	"os"

	"github.com/disklink/disklink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
