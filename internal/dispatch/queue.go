package dispatch

import (
	"slices"
	"sync"

	"github.com/backmassage/xresconv/internal/planner"
)

// Queue is the shared job stack. Jobs are stored reversed and popped from
// the tail, so they come out in the order given to NewQueue.
type Queue struct {
	mu   sync.Mutex
	jobs []planner.Job
}

// NewQueue returns a queue that yields jobs in order.
func NewQueue(jobs []planner.Job) *Queue {
	rev := slices.Clone(jobs)
	slices.Reverse(rev)
	return &Queue{jobs: rev}
}

// PopBatch removes and returns up to n jobs. It returns nil once the queue
// is empty.
func (q *Queue) PopBatch(n int) []planner.Job {
	if n < 1 {
		n = 1
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []planner.Job
	for len(out) < n && len(q.jobs) > 0 {
		last := len(q.jobs) - 1
		out = append(out, q.jobs[last])
		q.jobs = q.jobs[:last]
	}
	return out
}

// Len returns the number of jobs not yet popped.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
