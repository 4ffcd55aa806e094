// Package spectokenize parallelizes csslex tokenization across N byte
// windows of one input, using speculate.SpecFold with
// csslex.NextTokenStart as the predictor and a per-window Tokenizer run as
// the fold's loop body.
package spectokenize

import (
	"github.com/csslex/speccss/csslex"
	"github.com/csslex/speccss/speculate"
)

// message is what a loop_body invocation publishes to the collector: either
// "forget whatever index i held" (clear=true) or "here is index i's token
// vector". A single loop_body call always sends exactly one clear followed
// by exactly one push; a replayed call (after a misprediction) sends its
// own clear+push pair afterward, superseding the stale one.
type message struct {
	index  int
	clear  bool
	tokens []csslex.Node
}

// collector assembles N independently-produced, possibly-replayed token
// vectors into one slice, ordered by window index. It is the single
// consumer of a channel fed by every loop_body invocation (including
// misprediction replays), so no locking is needed on its own state.
type collector struct {
	vectors [][]csslex.Node
	msgs    chan message
	done    chan struct{}
}

func newCollector(n int) *collector {
	c := &collector{
		vectors: make([][]csslex.Node, n),
		msgs:    make(chan message, n*2),
		done:    make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *collector) run() {
	for m := range c.msgs {
		if m.clear {
			c.vectors[m.index] = nil
		} else {
			c.vectors[m.index] = m.tokens
		}
	}
	close(c.done)
}

// finish closes the message channel and waits for run to drain it, then
// flattens the per-window vectors into one index-ordered sequence.
func (c *collector) finish() []csslex.Node {
	close(c.msgs)
	<-c.done
	var total int
	for _, v := range c.vectors {
		total += len(v)
	}
	out := make([]csslex.Node, 0, total)
	for _, v := range c.vectors {
		out = append(out, v...)
	}
	return out
}

// Tokenize preprocesses input and lexes it using N concurrent windows,
// predicting each window's start with csslex.NextTokenStart and correcting
// mispredictions via speculate.SpecFold. The returned token sequence and
// SourceLocations are identical to what csslex.Tokenize(input) would
// produce sequentially; SpecStats records which windows, if any, had to be
// replayed.
//
// N must be >= 1. A single window (N == 1) still goes through SpecFold for
// uniformity, but iteration 0 never mispredicts, so it always runs once.
func Tokenize(input string, n int) (speculate.SpecStats, []csslex.Node) {
	pre := csslex.Preprocess(input)
	length := len(pre)
	window := ceilDiv(length, n)

	col := newCollector(n)

	predictor := func(i int) int {
		return csslex.NextTokenStart(pre, i*window)
	}

	loopBody := func(i int, start int) int {
		end := (i + 1) * window
		if end > length {
			end = length
		}

		col.msgs <- message{index: i, clear: true}

		tok := csslex.NewTokenizer(pre)
		line, lastLineStart := csslex.LineAt(pre, start)
		tok.SetPositionAndLine(start, line, lastLineStart)

		var nodes []csslex.Node
		for tok.Position() < end {
			node, ok := tok.Next()
			if !ok {
				break
			}
			nodes = append(nodes, node)
		}

		col.msgs <- message{index: i, tokens: nodes}
		return tok.Position()
	}

	stats := speculate.SpecFold(n, loopBody, predictor)
	return stats, col.finish()
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
