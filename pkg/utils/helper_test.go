package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryInt(t *testing.T) {
	got, err := ParseQueryInt("", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	got, err = ParseQueryInt("7", 20)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	// Out-of-range values pass through untouched; range checks live in
	// struct validation.
	got, err = ParseQueryInt("99", 20)
	require.NoError(t, err)
	assert.Equal(t, 99, got)

	_, err = ParseQueryInt("abc", 20)
	assert.Error(t, err)
}
