package starcache

import (
	"context"
	"math"
	"testing"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { cache.Close() })

	return cache
}

func sampleAttributes(stars float64) api.Attributes {
	return api.Attributes{
		Total:             stars,
		Aim:               stars,
		Speed:             stars * 0.8,
		SnapAim:           stars * 0.7,
		ApproachRate:      9.3,
		OverallDifficulty: 8,
		ObjectCount:       100,
		Circles:           80,
		Sliders:           19,
		Spinners:          1,
		MaxCombo:          140,
		FullCombo: &api.FullComboResult{
			Skill:        120,
			Rating:       stars * 1.1,
			ExpectedTime: math.Inf(1),
			TargetTime:   3600,
			MapLength:    60,
			Iterations:   5,
		},
		Skills: map[api.Dimension]*api.StrainState{api.Aim: {Peaks: []float64{1, 2}}},
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	key := Key{MapHash: "abc", Mods: difficulty.DoubleTime | difficulty.Hidden, TuningHash: "t1", Version: 1, FullCombo: true, ClockRate: 1.5}

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	attr := sampleAttributes(5.5)
	require.NoError(t, cache.Put(ctx, key, attr))

	entry, err := cache.Get(ctx, key)
	require.NoError(t, err)

	expected := attr
	expected.Skills = nil

	assert.Equal(t, key, entry.Key)
	assert.Equal(t, expected, entry.Attributes)
	assert.False(t, entry.CreatedAt.IsZero())

	// Skills of the stored value are untouched
	assert.NotNil(t, attr.Skills)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	key := Key{MapHash: "abc", TuningHash: "t1", Version: 1}

	require.NoError(t, cache.Put(ctx, key, sampleAttributes(5)))
	require.NoError(t, cache.Put(ctx, key, sampleAttributes(6)))

	entry, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 6.0, entry.Attributes.Total)

	entries, err := cache.List(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestKeyParts(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	key := Key{MapHash: "abc", TuningHash: "t1", Version: 1}
	require.NoError(t, cache.Put(ctx, key, sampleAttributes(5)))

	for _, other := range []Key{
		{MapHash: "abd", TuningHash: "t1", Version: 1},
		{MapHash: "abc", Mods: difficulty.HardRock, TuningHash: "t1", Version: 1},
		{MapHash: "abc", TuningHash: "t2", Version: 1},
		{MapHash: "abc", TuningHash: "t1", Version: 2},
		{MapHash: "abc", TuningHash: "t1", Version: 1, FullCombo: true},
		{MapHash: "abc", TuningHash: "t1", Version: 1, ClockRate: 1.2},
	} {
		_, err := cache.Get(ctx, other)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestListAndPrune(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t)

	require.NoError(t, cache.Put(ctx, Key{MapHash: "abc", TuningHash: "t", Version: 1}, sampleAttributes(4)))
	require.NoError(t, cache.Put(ctx, Key{MapHash: "abc", Mods: difficulty.DoubleTime, TuningHash: "t", Version: 2, ClockRate: 1.5}, sampleAttributes(6)))
	require.NoError(t, cache.Put(ctx, Key{MapHash: "other", TuningHash: "t", Version: 2}, sampleAttributes(1)))

	entries, err := cache.List(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 6.0, entries[0].Attributes.Total)
	assert.Equal(t, difficulty.DoubleTime, entries[0].Mods)
	assert.Equal(t, 1.5, entries[0].ClockRate)
	assert.Equal(t, 4.0, entries[1].Attributes.Total)

	removed, err := cache.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entries, err = cache.List(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
