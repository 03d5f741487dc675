// Command meshctl validates, describes, and generates mesh trees.
package main

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-meshdata/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "meshctl:", err)
		os.Exit(1)
	}
}
