// Command faultctl manages facility fault reports from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/rpggio/faultdesk/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
