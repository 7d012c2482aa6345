// Command tablegen generates source text from table-definition documents.
package main

import (
	"os"

	"github.com/leapstack-labs/tablegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
