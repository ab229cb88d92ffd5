package methods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexDate(t *testing.T) {
	// 毫秒时间戳
	d, ok := ParseFlexDate("1704067200000")
	require.True(t, ok)
	assert.Equal(t, 2024, d.UTC().Year())

	// 秒时间戳
	d, ok = ParseFlexDate("1704067200")
	require.True(t, ok)
	assert.Equal(t, 2024, d.UTC().Year())

	// 日期串与ISO变体
	d, ok = ParseFlexDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, time.March, d.Month())

	d, ok = ParseFlexDate("2024-03-15T08:00:00")
	require.True(t, ok)
	assert.Equal(t, 15, d.Day())

	_, ok = ParseFlexDate("")
	assert.False(t, ok)
	_, ok = ParseFlexDate("garbage")
	assert.False(t, ok)
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, "2024 Q1", QuarterOf(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024 Q4", QuarterOf(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLastQuarters(t *testing.T) {
	now := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)
	quarters := LastQuarters(now, 4)
	assert.Equal(t, []string{"2024 Q1", "2024 Q2", "2024 Q3", "2024 Q4"}, quarters)
}
