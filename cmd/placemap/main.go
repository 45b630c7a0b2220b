// Command placemap turns a spreadsheet of place reviews into geocoded places.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/placemap/internal/adapters/driving/cli"
)

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
