package linefile

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/lanrat/linefile/diff"
)

// buffer size for the channels feeding a comparison
const compareChanBuffSize = 64

// errUnequal short-circuits Equal on the first difference found.
var errUnequal = errors.New("linefile: contents differ")

// Compare runs a positional line comparison of two managers. Both producers
// and the comparison run concurrently; fn is called for every line index
// where the two contents disagree (see diff.Lines). Either manager may be
// streaming or cached.
func Compare(ctx context.Context, a, b Manager, fn diff.ResultFunc) (diff.Result, error) {
	g, gctx := errgroup.WithContext(ctx)

	aChan := make(chan string, compareChanBuffSize)
	bChan := make(chan string, compareChanBuffSize)
	aErrChan := make(chan error, 1)
	bErrChan := make(chan error, 1)

	g.Go(func() error {
		defer close(aChan)
		defer close(aErrChan)
		if err := a.Send(gctx, aChan); err != nil {
			aErrChan <- err
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer close(bChan)
		defer close(bErrChan)
		if err := b.Send(gctx, bChan); err != nil {
			bErrChan <- err
			return err
		}
		return nil
	})

	var r diff.Result
	g.Go(func() error {
		var err error
		r, err = diff.Lines(gctx, aChan, bChan, aErrChan, bErrChan, fn)
		return err
	})

	if err := g.Wait(); err != nil {
		return r, err
	}
	return r, nil
}

// Equal reports whether two managers hold identical line sequences. It
// stops both passes as soon as the first difference is found.
func Equal(ctx context.Context, a, b Manager) (bool, error) {
	_, err := Compare(ctx, a, b, func(diff.Delta, int, string) error {
		return errUnequal
	})
	if err != nil {
		if errors.Is(err, errUnequal) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
