package linefile_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanrat/linefile"
	"github.com/lanrat/linefile/diff"
)

func TestEqualIdentical(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"a", "b", "c"}))
	b := newStream(t, writeTestFile(t, []string{"a", "b", "c"}))

	equal, err := linefile.Equal(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestEqualDiffers(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"a", "b", "c"}))
	b := newStream(t, writeTestFile(t, []string{"a", "x", "c"}))

	equal, err := linefile.Equal(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestEqualPrefix(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"a", "b"}))
	b := newStream(t, writeTestFile(t, []string{"a", "b", "c"}))

	equal, err := linefile.Equal(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, equal, "a strict prefix is not equal")
}

func TestCompareCounters(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"same", "old", "same", "only-a"}))
	b := newStream(t, writeTestFile(t, []string{"same", "new", "same"}))

	result, err := linefile.Compare(ctx, a, b, func(diff.Delta, int, string) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalA)
	assert.Equal(t, 3, result.TotalB)
	assert.Equal(t, 2, result.Common)
	assert.Equal(t, 1, result.Changed)
	assert.Equal(t, 1, result.ExtraA)
	assert.Equal(t, 0, result.ExtraB)
	assert.False(t, result.Equal())
}

func TestCompareCallbackOrder(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"a", "old"}))
	b := newStream(t, writeTestFile(t, []string{"a", "new", "extra"}))

	var calls []string
	_, err := linefile.Compare(ctx, a, b, func(d diff.Delta, index int, line string) error {
		calls = append(calls, fmt.Sprintf("%s %d %s", d, index, line))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"< 1 old", "> 1 new", "> 2 extra"}, calls)
}

func TestCompareMixedStrategies(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, []string{"a", "b"})

	cached, err := linefile.NewCachedManager(linefile.NewFileSource(path), nil)
	require.NoError(t, err)
	streaming := newStream(t, path)

	equal, err := linefile.Equal(ctx, cached, streaming)
	require.NoError(t, err)
	assert.True(t, equal)

	require.NoError(t, cached.Set(1, "edited"))
	equal, err = linefile.Equal(ctx, cached, streaming)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestCompareSourceError(t *testing.T) {
	ctx := context.Background()
	a := newStream(t, writeTestFile(t, []string{"a"}))

	// an unbound manager fails its pass; the comparison must surface it
	b, err := linefile.NewStreamManager(nil, nil)
	require.NoError(t, err)

	_, err = linefile.Compare(ctx, a, b, func(diff.Delta, int, string) error { return nil })
	assert.ErrorIs(t, err, linefile.ErrUnbound)
}
