//go:build !hullsatdebug

package debug

// Enabled is true in builds tagged hullsatdebug
const Enabled = false
