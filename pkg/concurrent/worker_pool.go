package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool runs numWorkers goroutines over a buffered job queue. Results are
// delivered in completion order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker has drained the queue, then closes the
// results channel. Close must have been called first.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexedResult[G any] struct {
	index  int
	result G
}

// Map applies jobFunc to every job on numWorkers workers and returns the
// results in job order.
func Map[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	pool := NewWorkerPool[int, indexedResult[G]](MinWorkers(numWorkers, len(jobs)), len(jobs))
	for i := range jobs {
		pool.AddJob(i)
	}
	pool.Close()

	pool.Start(func(i int) indexedResult[G] {
		return indexedResult[G]{index: i, result: jobFunc(jobs[i])}
	})
	pool.Wait()

	out := make([]G, len(jobs))
	for r := range pool.CollectResults() {
		out[r.index] = r.result
	}
	return out
}

func MinWorkers(numWorkers, numJobs int) int {
	if numJobs < numWorkers {
		return numJobs
	}
	return numWorkers
}
