package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/tradegate/market"
)

func streamBars() market.Series {
	return market.Series{
		{Open: 100, High: 105, Low: 99, Close: 102},
		{Open: 102, High: 107, Low: 101, Close: 105},
		{Open: 105, High: 108, Low: 104, Close: 106},
		{Open: 106, High: 110, Low: 105, Close: 108},
		{Open: 108, High: 112, Low: 107, Close: 110},
		{Open: 110, High: 113, Low: 109, Close: 111},
		{Open: 111, High: 115, Low: 110, Close: 113},
		{Open: 113, High: 116, Low: 112, Close: 114},
	}
}

func TestEMAStreamMatchesOneShot(t *testing.T) {
	t.Parallel()

	bars := streamBars()
	stream := NewEMAStream(5)
	for _, b := range bars {
		stream.Update(b)
	}

	require.True(t, stream.Ready())

	want, err := EMA(bars.Closes(), 5)
	require.NoError(t, err)
	assert.InDelta(t, want, stream.Value(), 1e-12)
}

func TestEMAStreamWarmup(t *testing.T) {
	t.Parallel()

	stream := NewEMAStream(5)
	assert.Equal(t, 5, stream.Warmup())
	assert.Equal(t, "EMA(5)", stream.Name())

	for i, b := range streamBars()[:4] {
		stream.Update(b)
		assert.False(t, stream.Ready(), "should not be ready after %d updates", i+1)
		assert.Equal(t, 0.0, stream.Value())
	}
}

func TestEMAStreamReset(t *testing.T) {
	t.Parallel()

	stream := NewEMAStream(3)
	for _, b := range streamBars() {
		stream.Update(b)
	}
	require.True(t, stream.Ready())

	stream.Reset()
	assert.False(t, stream.Ready())
	assert.Equal(t, 0.0, stream.Value())
}

func TestATRStreamMatchesOneShot(t *testing.T) {
	t.Parallel()

	bars := streamBars()
	stream := NewATRStream(3)
	for _, b := range bars {
		stream.Update(b)
	}

	require.True(t, stream.Ready())

	want, err := ATR(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, want, stream.Value(), 1e-12)
}

func TestATRStreamWarmup(t *testing.T) {
	t.Parallel()

	stream := NewATRStream(3)
	assert.Equal(t, 4, stream.Warmup())
	assert.Equal(t, "ATR(3)", stream.Name())

	bars := streamBars()
	for _, b := range bars[:3] {
		stream.Update(b)
	}
	// 3 bars produce only 2 true ranges: still warming up
	assert.False(t, stream.Ready())

	stream.Update(bars[3])
	assert.True(t, stream.Ready())
}
