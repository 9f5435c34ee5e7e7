// Package planner compiles convert-list items into converter jobs.
//
// Every enabled item is expanded against the output matrix: one job per
// output rule whose tag and class predicates the item satisfies, or a single
// job when no output_type was declared. Each job is a ready-to-send argument
// list; see Compile for the argument order.
package planner
