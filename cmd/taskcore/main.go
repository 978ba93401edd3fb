// Command taskcore is a thin driver over the scheduling core: it loads a
// JSON task graph and runs, validates, or plans it.
package main

import (
	"os"

	"taskcore/internal/cliapp"
)

func main() {
	os.Exit(cliapp.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
