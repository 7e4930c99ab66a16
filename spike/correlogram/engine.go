package correlogram

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cwbudde/algo-spike/spike/train"
)

// Compute returns the correlograms of every ordered unit pair of s and the
// bin edges in milliseconds. See ComputeContext.
func Compute(s train.Sorting, windowMs, binMs float64, method Method, opts ...Option) (Tensor, []float64, error) {
	return ComputeContext(context.Background(), s, windowMs, binMs, method, opts...)
}

// ComputeContext computes correlograms for all unit pairs and segments.
//
// Parameters and method are checked before any histogram work. Each unordered
// pair {i, j} with i <= j is computed once per segment; Pair(j, i) is filled
// with the reversed counts. Segments are summed. If ctx is done before all
// pairs finish, the call returns ctx.Err() and no tensor.
func ComputeContext(ctx context.Context, s train.Sorting, windowMs, binMs float64, method Method, opts ...Option) (Tensor, []float64, error) {
	cfg := applyOptions(opts...)

	if !method.valid() {
		return Tensor{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if s == nil {
		return Tensor{}, nil, &ParamError{Param: "sorting", Value: nil, Reason: "must not be nil"}
	}

	g, err := PlanBins(s.SamplingFrequency(), windowMs, binMs)
	if err != nil {
		return Tensor{}, nil, err
	}

	resolved, err := ResolveMethod(method, cfg.Logger)
	if err != nil {
		return Tensor{}, nil, err
	}
	strategy, err := StrategyFor(resolved)
	if err != nil {
		return Tensor{}, nil, err
	}

	ids := s.UnitIDs()
	numSegments := s.NumSegments()

	trains := make([][]train.Train, numSegments)
	segments := make([]Tensor, numSegments)
	var tasks []pairTask
	for seg := range numSegments {
		trains[seg] = make([]train.Train, len(ids))
		for i, id := range ids {
			trains[seg][i] = s.SpikeTrain(id, seg)
		}
		segments[seg] = NewTensor(ids, g.NumBins)

		for i := range ids {
			if len(trains[seg][i]) == 0 {
				continue
			}
			for j := i; j < len(ids); j++ {
				if len(trains[seg][j]) == 0 {
					continue
				}
				tasks = append(tasks, pairTask{segment: seg, i: i, j: j})
			}
		}
	}

	err = runTasks(ctx, cfg.Workers, tasks, func(tk pairTask) {
		a, b := trains[tk.segment][tk.i], trains[tk.segment][tk.j]
		counts := strategy.Histogram(a, b, g, tk.i == tk.j)

		out := segments[tk.segment]
		copy(out.Pair(tk.i, tk.j), counts)
		if tk.i != tk.j {
			reverseInto(out.Pair(tk.j, tk.i), counts)
		}
	})
	if err != nil {
		return Tensor{}, nil, err
	}

	result := NewTensor(ids, g.NumBins)
	for _, seg := range segments {
		if err := result.Add(seg); err != nil {
			return Tensor{}, nil, err
		}
	}

	return result, slices.Clone(g.Edges), nil
}

type pairTask struct {
	segment int
	i, j    int
}

// runTasks fans tasks out to a fixed number of workers. Every task writes
// a disjoint region of the output, so no further synchronization is needed.
func runTasks(ctx context.Context, workers int, tasks []pairTask, fn func(pairTask)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	workers = max(min(workers, len(tasks)), 1)

	ch := make(chan pairTask)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range ch {
				fn(tk)
			}
		}()
	}

feed:
	for _, tk := range tasks {
		select {
		case <-ctx.Done():
			break feed
		case ch <- tk:
		}
	}
	close(ch)
	wg.Wait()

	return ctx.Err()
}
