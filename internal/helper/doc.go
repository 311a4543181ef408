// Package helper owns the checkAndJoinStyleName runtime helper: the source
// text injected into emitted files, a Go implementation of the same
// semantics, and the registration of an implementation into a runtime module.
package helper
