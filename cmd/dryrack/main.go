// Command dryrack tracks the laundry hanging on the drying rack.
package main

import (
	"os"

	"github.com/mesh-intelligence/dryrack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
