// Command configarray is a thin CLI collaborator around the configarray
// library: it loads a YAML-described list of config entries and a
// per-user global ignore file, then answers config/ignore queries against
// them. It exists to exercise the library the way an embedding linter or
// build tool would, not as a production tool in its own right.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
