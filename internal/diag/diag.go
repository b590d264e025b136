// Package diag formats UCI "info string" progress lines, the closest thing
// this lineage of engines has to a logging library: every diagnostic goes
// to the same stream the protocol itself uses, prefixed so a GUI parsing
// stdout can tell it apart from a real command response.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Writer is where info string lines go; tests can swap it out.
var Writer io.Writer = os.Stdout

// Printf writes a single "info string "-prefixed line to Writer.
func Printf(format string, args ...any) {
	fmt.Fprintf(Writer, "info string "+format+"\n", args...)
}

// Println writes a single "info string "-prefixed line to Writer.
func Println(args ...any) {
	fmt.Fprintln(Writer, append([]any{"info string"}, args...)...)
}
