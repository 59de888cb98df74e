package concurrent

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		pool.AddJob(i)
	}
	pool.Close()
	pool.Start(func(job int) int {
		return job * 2
	})
	pool.Wait()

	sum := 0
	count := 0
	for r := range pool.CollectResults() {
		sum += r
		count++
	}
	assert.Equal(t, 100, count)
	assert.Equal(t, 9900, sum)
}

func TestMapPreservesJobOrder(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		jobs       []int
	}{
		{name: "more workers than jobs", numWorkers: 16, jobs: []int{3, 1, 2}},
		{name: "single worker", numWorkers: 1, jobs: []int{5, 4, 3, 2, 1}},
		{name: "zero workers falls back to one", numWorkers: 0, jobs: []int{7, 8}},
		{name: "no jobs", numWorkers: 4, jobs: []int{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			got := Map[int, int](tt.numWorkers, tt.jobs, func(job int) int {
				calls.Add(1)
				return job * job
			})

			require.Len(t, got, len(tt.jobs))
			for i, job := range tt.jobs {
				assert.Equal(t, job*job, got[i])
			}
			assert.Equal(t, int64(len(tt.jobs)), calls.Load())
		})
	}
}
