package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `time,open,high,low,close,volume
2025-06-01T08:00:00Z,100,101,99.5,100.5,1200
1748765700,100.5,102,100,101.5,1500
`)

	bars, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), bars[0].Time)
	assert.InDelta(t, 100.5, bars[0].Close, 1e-12)
	assert.InDelta(t, 1500.0, bars[1].Volume, 1e-12)
	// Unix timestamps come back in UTC.
	assert.Equal(t, time.UTC, bars[1].Time.Location())
}

func TestReadCSVWithoutHeader(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "2025-06-01T08:00:00Z,100,101,99.5,100.5,1200\n")

	bars, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("bad time", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "yesterday,100,101,99.5,100.5,1200\n")
		_, err := ReadCSV(path)
		assert.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "2025-06-01T08:00:00Z,100,high,99.5,100.5,1200\n")
		_, err := ReadCSV(path)
		assert.Error(t, err)
	})

	t.Run("wrong column count", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "2025-06-01T08:00:00Z,100,101\n")
		_, err := ReadCSV(path)
		assert.Error(t, err)
	})

	t.Run("empty file fails validation", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "")
		_, err := ReadCSV(path)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
