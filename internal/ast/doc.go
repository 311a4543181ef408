// Package ast holds the arena-allocated tree of a markup-bearing source file.
//
// Host-language code is not modelled: it is kept as verbatim code runs with
// the markup found inside them parsed into elements, fragments, attribute
// groups and containers. Nodes are immutable once allocated.
package ast
