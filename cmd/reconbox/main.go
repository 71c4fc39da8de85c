package main

import (
	"os"

	"github.com/buemura/reconbox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
