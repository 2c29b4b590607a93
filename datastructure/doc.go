// Package datastructure holds small generic containers: an insertion-ordered
// map with default values, an autovivifying tree built on top of it, and a
// helper that flattens nested slices.
package datastructure
