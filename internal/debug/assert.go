// Package debug holds invariant checks that only run in builds tagged hullsatdebug.
package debug

import "fmt"

// Assert panics with the formatted message when cond is false and assertions are enabled
func Assert(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("hullsat: assertion failed: "+format, args...))
	}
}
