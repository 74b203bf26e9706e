// marskit – Mars Habitat 3D-Print Challenge kit emitter.
// Self-contained CLI: the kit documents are embedded in the binary and
// written to disk on demand, with verify/watch support to keep them pinned.
package main

import (
	"os"
	"time"

	"github.com/marshab/marskit/cmd"
	"github.com/marshab/marskit/internal/audit"
	"github.com/marshab/marskit/internal/exitcode"
	"github.com/marshab/marskit/internal/output"
	_ "github.com/marshab/marskit/schemas"
)

func main() {
	start := time.Now()
	if err := cmd.Execute(); err != nil {
		code := exitcode.Of(err)
		event := audit.BuildEvent(os.Args, "failure", code, time.Since(start))
		_ = audit.Write(event)
		output.PrintError(err)
		os.Exit(code)
	}

	event := audit.BuildEvent(os.Args, "success", exitcode.OK, time.Since(start))
	_ = audit.Write(event)
}
