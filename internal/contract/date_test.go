package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesterday(t *testing.T) {
	now := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, Date(2026, time.February, 28), Yesterday(now))

	now = time.Date(2026, time.January, 1, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, Date(2025, time.December, 31), Yesterday(now))
}

func TestIsSaturday(t *testing.T) {
	assert.True(t, IsSaturday(Date(2026, time.March, 14)))
	assert.False(t, IsSaturday(Date(2026, time.March, 15)))
	assert.False(t, IsSaturday(Date(2026, time.March, 13)))
}

func TestFormatField(t *testing.T) {
	assert.Equal(t, "03/05/2026", FormatField(Date(2026, time.March, 5)))
	assert.Equal(t, "12/19/2025", FormatField(Date(2025, time.December, 19)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-19")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.December, 19), d)

	_, err = ParseDate("12/19/2025")
	assert.Error(t, err)
}

func TestSuggestionsSorted(t *testing.T) {
	s := Suggestions()
	require.NotEmpty(t, s)
	assert.Contains(t, s, "MNQ 03-26")

	for i := 1; i < len(s); i++ {
		assert.LessOrEqual(t, s[i-1], s[i])
	}

	for _, c := range s {
		_, err := Parse(c)
		assert.NoError(t, err, c)
	}
}
