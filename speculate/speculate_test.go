package speculate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpec(t *testing.T) {
	assert.Equal(t, 6, Spec(func() int { return 2 + 2 }, func() int { return 4 }, func(x int) int { return x + 2 }))
	assert.Equal(t, 6, Spec(func() int { return 2 + 2 }, func() int { return 1 }, func(x int) int { return x + 2 }))
}

// resultCollector mirrors the mpsc-channel result collector used by the
// speculative fold's own tests: loopBody publishes (idx, val) pairs as a
// side effect, and the collector assembles them into an index-ordered slice
// once every worker (including any mispredicted replay) has reported in.
type resultCollector struct {
	mu      sync.Mutex
	results []int
}

func newResultCollector(size int) *resultCollector {
	return &resultCollector{results: make([]int, size)}
}

func (c *resultCollector) publish(idx, val int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[idx] = val
}

func TestSpecFoldCorrectPrediction(t *testing.T) {
	collector := newResultCollector(5)
	loopBody := func(idx int, val int) int {
		res := idx + val
		collector.publish(idx, res)
		return res
	}
	predicted := []int{0, 0, 1, 3, 6}
	predictor := func(idx int) int { return predicted[idx] }

	stats := SpecFold(5, loopBody, predictor)

	assert.Equal(t, []int{0, 1, 3, 6, 10}, collector.results)
	assert.Equal(t, 5, stats.Iters)
	assert.Equal(t, []bool{false, false, false, false, false}, stats.Mispredictions)
}

func TestSpecFoldIncorrectPrediction(t *testing.T) {
	collector := newResultCollector(1)
	loopBody := func(idx int, val int) int {
		res := idx + val + 5
		collector.publish(idx, res)
		return res
	}
	predictor := func(int) int { return 0 }

	stats := SpecFold(1, loopBody, predictor)

	assert.Equal(t, []int{5}, collector.results)
	assert.Equal(t, []bool{false}, stats.Mispredictions)
}

func TestSpecFoldDetectsMispredictionAfterFirstIteration(t *testing.T) {
	// predictor always guesses 0, which is only right for iteration 0.
	collector := newResultCollector(4)
	loopBody := func(idx int, val int) int {
		res := val + 1
		collector.publish(idx, res)
		return res
	}
	predictor := func(int) int { return 0 }

	stats := SpecFold(4, loopBody, predictor)

	assert.Equal(t, []int{1, 2, 3, 4}, collector.results)
	assert.Equal(t, []bool{false, true, true, true}, stats.Mispredictions)
}

func TestSpecFoldNoTasks(t *testing.T) {
	collector := newResultCollector(0)
	loopBody := func(idx int, val int) int {
		res := idx + val + 5
		collector.publish(idx, res)
		return res
	}
	predictor := func(int) int { return 0 }

	stats := SpecFold(0, loopBody, predictor)

	assert.Equal(t, []int{}, collector.results)
	assert.Equal(t, 0, stats.Iters)
	assert.Empty(t, stats.Mispredictions)
}
