package planner

import "github.com/backmassage/xresconv/internal/argv"

// NoRule is Job.Rule when the output matrix is empty.
const NoRule = -1

// Job is one converter invocation line: the arguments xresloader reads from
// one line of its stdin.
type Job struct {
	Item string // item label, for logs
	Rule int    // index into the output matrix, or NoRule
	Args []string
}

// Line serializes the job as a single stdin line. Tokens with whitespace,
// quotes or no content are quoted.
func (j Job) Line() string { return argv.Join(j.Args) }

// Plan is the result of Compile.
type Plan struct {
	Jobs []Job

	// Filtered counts item/rule pairs dropped by tag or class predicates.
	Filtered int
	// Disabled counts items excluded by the scheme filter.
	Disabled int
	// BatchSize is how many jobs a worker pops at once.
	BatchSize int
}
