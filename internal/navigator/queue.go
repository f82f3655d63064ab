package navigator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

// DefaultQueueSize is the default number of navigations a journal can have pending.
const DefaultQueueSize = 100

// ErrQueueFull is returned when a journal already has the maximum number of pending navigations.
var ErrQueueFull = errors.New("navigation queue is full")

type jobKind int

const (
	jobForward jobKind = iota
	jobBack
)

// job is one pending navigation.
type job struct {
	kind       jobKind
	ctx        context.Context
	path       navigation.ResolvedPath
	nav        *navigation.Navigation
	callbacks  navigation.Callbacks
	enqueuedAt time.Time
}

// jobQueue is a bounded, thread-safe FIFO of pending navigations.
type jobQueue struct {
	mu      sync.Mutex
	entries []job
	maxSize int
}

func newJobQueue(maxSize int) *jobQueue {
	if maxSize <= 0 {
		maxSize = DefaultQueueSize
	}
	return &jobQueue{maxSize: maxSize}
}

// enqueue adds j to the back of the queue.
func (q *jobQueue) enqueue(j job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) >= q.maxSize {
		return ErrQueueFull
	}
	q.entries = append(q.entries, j)
	return nil
}

// dequeue removes and returns the job at the front of the queue.
func (q *jobQueue) dequeue() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return job{}, false
	}
	j := q.entries[0]
	q.entries[0] = job{}
	q.entries = q.entries[1:]
	return j, true
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// drain removes and returns every pending job.
func (q *jobQueue) drain() []job {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.entries
	q.entries = nil
	return out
}
