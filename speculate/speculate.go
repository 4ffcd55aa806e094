// Package speculate provides a small speculative-execution primitive: run a
// slow producer concurrently with a consumer that has already been fed a
// guessed value, and only fall back to the true value if the guess was
// wrong. It is a pure-functional speculation mechanism — correctness does
// not depend on cancelling the speculative work, only on the consumer being
// deterministic.
//
// Two variants are exported: Spec, for a single producer/consumer pair, and
// SpecFold, for parallelizing a dependent loop whose i'th iteration needs
// the (i-1)'th iteration's output as input.
package speculate

// SpecStats reports how a SpecFold run went: how many iterations ran, and
// which of them had to be recomputed because their prediction didn't match
// the true predecessor value.
type SpecStats struct {
	Iters          int
	Mispredictions []bool
}

// Spec runs producer on its own goroutine while predictor and consumer run
// on the caller's goroutine. The caller gets consumer's output for the
// predicted value immediately, overlapping with the producer; once the
// producer finishes, its true value is compared against the prediction. A
// match means the speculative result is already correct and is returned
// as-is; a mismatch means consumer must be re-run with the true value.
//
// Spec returns exactly consumer(producer()), assuming consumer is a pure
// function of its argument. Any side effect consumer performed while
// speculating on a wrong guess is not rolled back — that is the caller's
// responsibility to avoid or tolerate.
func Spec[A comparable, B any](producer func() A, predictor func() A, consumer func(A) B) B {
	done := make(chan A, 1)
	go func() {
		done <- producer()
	}()

	prediction := predictor()
	speculative := consumer(prediction)
	actual := <-done

	if actual == prediction {
		return speculative
	}
	return consumer(actual)
}

// foldAttempt is what each per-iteration worker reports back: the guess it
// ran with, and the true result produced from that guess.
type foldAttempt[A any] struct {
	prediction A
	result     A
}

// SpecFold parallelizes the dependent recurrence x[i+1] = loopBody(i, x[i])
// across iters iterations. predictor(i) supplies the guess fed to iteration
// i; loopBody(i, x) is the loop body run against that guess.
//
// One worker is spawned per iteration, each computing its own prediction
// and loop-body result independently and concurrently. The caller then
// joins the workers in index order: iteration i's prediction is compared
// against iteration i-1's *true* result. A mismatch is a misprediction —
// loopBody is synchronously re-run at i with the true predecessor, and that
// corrected result (not the stale speculative one) feeds comparisons at
// i+1. Iteration 0 has no predecessor and can never mispredict.
//
// loopBody may publish results out-of-band (e.g. over a channel) in
// addition to returning them; when a misprediction forces a replay, it is
// loopBody's responsibility to make sure the replay's publication
// supersedes whatever the stale, now-discarded attempt published.
func SpecFold[A comparable](iters int, loopBody func(i int, x A) A, predictor func(i int) A) SpecStats {
	stats := SpecStats{Iters: iters, Mispredictions: make([]bool, iters)}
	if iters == 0 {
		return stats
	}

	attempts := make([]chan foldAttempt[A], iters)
	for i := 0; i < iters; i++ {
		ch := make(chan foldAttempt[A], 1)
		attempts[i] = ch
		go func(i int) {
			prediction := predictor(i)
			result := loopBody(i, prediction)
			ch <- foldAttempt[A]{prediction: prediction, result: result}
		}(i)
	}

	var previous A
	havePrevious := false
	for i, ch := range attempts {
		attempt := <-ch
		if havePrevious && previous != attempt.prediction {
			stats.Mispredictions[i] = true
			previous = loopBody(i, previous)
		} else {
			previous = attempt.result
		}
		havePrevious = true
	}
	return stats
}
