// Package transform rewrites styleName attributes into className.
//
// For every attribute group that carries a valued styleName entry, the entry
// is removed and className becomes
//
//	className={(className) + " " + checkAndJoinStyleName(styleName)}
//
// or just the helper call when there was no className. The helper is
// requested from the Context every time a group is rewritten; the printer
// writes it once per file. Trees are never mutated: changed nodes are
// reallocated and unchanged subtrees are shared with the input.
package transform
