package pedpoptest

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/near/threshold-signatures/pkg/party"
)

// RunAll runs run concurrently for every id in participants, the way a
// caller would drive one goroutine per participant over a shared Network,
// and collects each participant's Output keyed by id. If any participant's
// run returns an error (including an *pedpop.Abort), RunAll returns the
// first such error and no partial results.
func RunAll[T any](ctx context.Context, participants party.IDSlice, run func(ctx context.Context, id party.ID) (T, error)) (map[party.ID]T, error) {
	results := make(map[party.ID]T, len(participants))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for _, id := range participants {
		id := id
		group.Go(func() error {
			out, err := run(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			results[id] = out
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
