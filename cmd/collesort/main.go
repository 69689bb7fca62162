// Command collesort balances player strengths into equal-size teams.
//
// Usage:
//
//	collesort sort --teams 2 1 2 3 4
//	echo "1 2 3 4 5 6" | collesort sort --teams 3 --json
//	collesort serve --config collesort.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
