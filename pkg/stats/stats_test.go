package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

func TestCompute(t *testing.T) {
	c, err := Compute([]int32{4, 2, 8, 6})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Count)
	assert.Equal(t, int64(2), c.Min)
	assert.Equal(t, int64(8), c.Max)
	assert.InDelta(t, 5.0, c.Mean, 1e-9)
	assert.InDelta(t, 2.581988897, c.StdDev, 1e-6)

	_, err = Compute(nil)
	require.Error(t, err)
}

func TestChannel_Extent(t *testing.T) {
	c, err := Compute([]int32{7, 7, 7})
	require.NoError(t, err)
	min, max := c.Extent()
	assert.Equal(t, int64(7), min)
	assert.Equal(t, int64(8), max)
	assert.Zero(t, c.StdDev)

	c, err = Compute([]int32{9})
	require.NoError(t, err)
	assert.Zero(t, c.StdDev)
}

func TestChannel_PercentileWindow(t *testing.T) {
	c, err := Compute(ramp(1000))
	require.NoError(t, err)

	start, end, err := c.PercentileWindow(0.01, 0.99)
	require.NoError(t, err)
	assert.InDelta(t, 9, start, 1)
	assert.InDelta(t, 989, end, 1)

	_, _, err = c.PercentileWindow(0.9, 0.1)
	require.Error(t, err)

	flat, err := Compute([]int32{3, 3, 3, 3})
	require.NoError(t, err)
	start, end, err = flat.PercentileWindow(0.1, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, start)
	assert.Equal(t, 4.0, end)
}

func TestChannel_SigmaWindow(t *testing.T) {
	c, err := Compute(ramp(101))
	require.NoError(t, err)

	start, end := c.SigmaWindow(1)
	assert.Less(t, start, c.Mean)
	assert.Greater(t, end, c.Mean)
	assert.GreaterOrEqual(t, start, 0.0)

	start, end = c.SigmaWindow(100)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 100.0, end)
}
