// Package diff compares two line streams by position and reports every index
// where they disagree. Unlike a minimal-edit diff it never realigns the
// streams: line i of stream A is only ever compared with line i of stream B,
// which keeps the comparison to a single bounded-memory pass.
package diff

import (
	"context"
	"fmt"
)

type lineDiffer struct {
	ctx                context.Context
	aChan, bChan       <-chan string
	aErrChan, bErrChan <-chan error
	resultFunc         ResultFunc
}

// Lines performs a positional comparison of two line channels.
// resultFunc is called for every line that exists in only one stream or
// whose value differs between the streams at the same index.
//
// Parameters:
//   - ctx: context for cancellation control
//   - aChan, bChan: line channels to compare, in file order
//   - aErrChan, bErrChan: error channels corresponding to each line channel,
//     read once the matching line channel is closed
//   - resultFunc: callback invoked for each difference found
//
// Returns counters describing the comparison and any error encountered.
func Lines(ctx context.Context, aChan, bChan <-chan string, aErrChan, bErrChan <-chan error, resultFunc ResultFunc) (Result, error) {
	if ctx == nil || aChan == nil || bChan == nil || aErrChan == nil || bErrChan == nil || resultFunc == nil {
		return Result{}, fmt.Errorf("diff.Lines() arguments must not be nil")
	}

	d := lineDiffer{
		ctx:        ctx,
		aChan:      aChan,
		aErrChan:   aErrChan,
		bChan:      bChan,
		bErrChan:   bErrChan,
		resultFunc: resultFunc,
	}
	return d.diff()
}

func (d *lineDiffer) diff() (r Result, err error) {
	var dataA, dataB string
	var okA, okB bool
	index := 0

	// read the first line from each stream
	select {
	case dataA, okA = <-d.aChan:
	case <-d.ctx.Done():
		return r, d.ctx.Err()
	}
	select {
	case dataB, okB = <-d.bChan:
	case <-d.ctx.Done():
		return r, d.ctx.Err()
	}
	for okA && okB {
		r.TotalA++
		r.TotalB++
		if dataA == dataB {
			r.Common++
		} else {
			r.Changed++
			if err = d.resultFunc(OLD, index, dataA); err != nil {
				return
			}
			if err = d.resultFunc(NEW, index, dataB); err != nil {
				return
			}
		}
		index++
		select {
		case dataA, okA = <-d.aChan:
		case <-d.ctx.Done():
			return r, d.ctx.Err()
		}
		select {
		case dataB, okB = <-d.bChan:
		case <-d.ctx.Done():
			return r, d.ctx.Err()
		}
	}
	// check for errors on whichever stream ended
	if !okA {
		if err = <-d.aErrChan; err != nil {
			return
		}
	}
	if !okB {
		if err = <-d.bErrChan; err != nil {
			return
		}
	}
	// if only A has lines left
	for okA {
		r.TotalA++
		r.ExtraA++
		if err = d.resultFunc(OLD, index, dataA); err != nil {
			return
		}
		index++
		select {
		case dataA, okA = <-d.aChan:
		case <-d.ctx.Done():
			return r, d.ctx.Err()
		}
	}
	if err = <-d.aErrChan; err != nil {
		return
	}
	// if only B has lines left
	for okB {
		r.TotalB++
		r.ExtraB++
		if err = d.resultFunc(NEW, index, dataB); err != nil {
			return
		}
		index++
		select {
		case dataB, okB = <-d.bChan:
		case <-d.ctx.Done():
			return r, d.ctx.Err()
		}
	}
	if err = <-d.bErrChan; err != nil {
		return
	}
	return
}

// PrintLineDiff satisfies ResultFunc and can be used as resultFunc in
// diff.Lines() to print differences in a terse "< 3 old" / "> 3 new" form.
func PrintLineDiff(d Delta, index int, line string) error {
	_, err := fmt.Printf("%s %d %s\n", d, index, line)
	return err
}
