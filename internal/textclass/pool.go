package textclass

import (
	"context"
	"errors"
	"log"
)

// ErrPoolStopped is returned by Classify after Stop.
var ErrPoolStopped = errors.New("classification pool stopped")

type task struct {
	comments []string
	reply    chan Result
}

// Pool runs classification on a fixed set of worker goroutines with a bounded
// queue. Its size is independent of the fan-out width of the analyze stage:
// many in-flight comment fetches share a handful of classification workers,
// keeping scoring off the goroutines doing network I/O.
type Pool struct {
	tasks    chan task
	stopChan chan struct{}
}

func NewPool(workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		tasks:    make(chan task, queueSize),
		stopChan: make(chan struct{}),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d classification workers", workerCount)

	return p
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	// One analyzer per worker; the VADER analyzer is not shared across
	// goroutines.
	classifier := NewClassifier()

	for {
		select {
		case <-p.stopChan:
			return
		case t := <-p.tasks:
			t.reply <- classifier.Classify(t.comments)
		}
	}
}

// Classify queues the comments and blocks until a worker scores them, the
// context is done, or the pool stops.
func (p *Pool) Classify(ctx context.Context, comments []string) (Result, error) {
	t := task{comments: comments, reply: make(chan Result, 1)}

	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.stopChan:
		return Result{}, ErrPoolStopped
	}

	select {
	case r := <-t.reply:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.stopChan:
		return Result{}, ErrPoolStopped
	}
}
