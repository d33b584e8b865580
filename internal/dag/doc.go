// Package dag holds the dependency graph between model nodes. An edge from A
// to B records that B consumes A as an input, so A must be realized first.
//
// Node and edge iteration follows insertion order, which keeps cycle reports
// and topological orders stable from one configuration pass to the next.
package dag
