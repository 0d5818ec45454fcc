// gh-isofields extracts calendar fields from ISO 8601 date-times.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/gh-isofields/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
