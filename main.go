package main

import (
	"fmt"
	"os"

	"github.com/sniffgate/sniffgate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sniffgate:", err)
		os.Exit(1)
	}
}
