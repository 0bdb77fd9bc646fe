package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWireDate(t *testing.T) {
	got, err := ParseWireDate("15/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"2024-01-15", "1/1/2024", "31/02/2024", "", "15/13/2024"} {
		_, err := ParseWireDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAnyDate(t *testing.T) {
	a, err := ParseAnyDate("2024-05-10")
	require.NoError(t, err)
	b, err := ParseAnyDate("10/05/2024")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = ParseAnyDate("10-05-2024")
	assert.Error(t, err)
}

func TestWireToStorage(t *testing.T) {
	s, err := WireToStorage("09/11/2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-11-09", s)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 3, 31, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
