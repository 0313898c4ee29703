package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/focusd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "focusd failed: %v\n", err)
		os.Exit(1)
	}
}
