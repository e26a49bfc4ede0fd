package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2027-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.March, 10, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "10-03-2027", "2027/03/10", "2027-02-30"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDaysUntil(t *testing.T) {
	from, _ := ParseDate("2027-03-10")
	to, _ := ParseDate("2027-03-15")

	assert.Equal(t, 5, DaysUntil(from, to))
	assert.Equal(t, -5, DaysUntil(to, from))
	assert.Zero(t, DaysUntil(from, from))
}
