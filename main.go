// Command autorelease publishes an npm package when its packed contents
// differ from the published version, bumping the version from the commit
// history since the last bump.
package main

import (
	"os"

	"github.com/apiarycd/autorelease/internal"
)

func main() {
	os.Exit(internal.Run())
}
