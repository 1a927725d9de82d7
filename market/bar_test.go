package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesValidate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		err := Series{}.Validate()
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("nan close", func(t *testing.T) {
		t.Parallel()
		s := Series{{Time: now, Open: 1, High: 2, Low: 0.5, Close: math.NaN(), Volume: 10}}
		err := s.Validate()
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("inf high", func(t *testing.T) {
		t.Parallel()
		s := Series{{Time: now, Open: 1, High: math.Inf(1), Low: 0.5, Close: 1.5, Volume: 10}}
		err := s.Validate()
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("clean", func(t *testing.T) {
		t.Parallel()
		s := Series{{Time: now, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}}
		assert.NoError(t, s.Validate())
	})
}

func TestCheckFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 300 * time.Second

	assert.NoError(t, CheckFresh(now.Add(-299*time.Second), now, window))
	assert.NoError(t, CheckFresh(now.Add(-300*time.Second), now, window))

	err := CheckFresh(now.Add(-301*time.Second), now, window)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleData)
}

func TestSeriesAccessors(t *testing.T) {
	t.Parallel()

	s := Series{
		{Open: 1, High: 3, Low: 0.5, Close: 2, Volume: 100},
		{Open: 2, High: 4, Low: 1.5, Close: 3, Volume: 200},
	}

	assert.Equal(t, []float64{2, 3}, s.Closes())
	assert.Equal(t, []float64{3, 4}, s.Highs())
	assert.Equal(t, []float64{0.5, 1.5}, s.Lows())
	assert.Equal(t, 3.0, s.Last().Close)
}

func TestBarShape(t *testing.T) {
	t.Parallel()

	b := Bar{Open: 10, High: 12, Low: 9, Close: 11}
	assert.InDelta(t, 1.0, b.Body(), 1e-12)
	assert.InDelta(t, 3.0, b.Range(), 1e-12)
	assert.True(t, b.Bullish())
}
