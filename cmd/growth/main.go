package main

import (
	"fmt"
	"os"

	"github.com/kyohei682474/1day1growth/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
