package main

import (
	"os"

	"github.com/rustyeddy/stockreport/cmd/stockreport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
