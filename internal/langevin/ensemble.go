package langevin

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/markovmodel/compsci-2018/internal/core"
	"gonum.org/v1/gonum/mat"
)

// Ensemble runs independent trajectories from the same initial state. Run i
// draws its noise from a source seeded with SeedStart+i.
type Ensemble struct {
	Runs      int
	SeedStart int64
}

func (e Ensemble) Run(ctx context.Context, force Force, nSteps int, x0, v0 *mat.Dense, mass []float64, p Params) ([]*Trajectory, error) {
	if e.Runs < 1 {
		return nil, core.OutOfRange("langevin.Ensemble.Run", "runs", e.Runs)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Trajectory, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(e.SeedStart + int64(idx)))
			results[idx], errs[idx] = IntegrateContext(ctx, force, nSteps, x0, v0, mass, p, rng)
			if errs[idx] != nil {
				cancel()
			}
		}(i)
	}

	wg.Wait()

	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if first == nil || (errors.Is(first, context.Canceled) && !errors.Is(err, context.Canceled)) {
			first = err
		}
	}
	if first != nil {
		return nil, first
	}
	return results, nil
}
