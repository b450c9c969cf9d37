// Command salesetl runs the global sales warehouse jobs: load-raw copies the
// country feeds into staging and the raw layer, transform unifies them,
// curate rebuilds the reports, run chains all three.
package main

import (
	"context"
	"os"

	// register all backends with the storage factory; --backend picks one.
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/all"
)

func main() {
	if err := newRootCmd(os.Getenv).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
