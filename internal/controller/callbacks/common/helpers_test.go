package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("view_group:123")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	_, err = ParseIDFromCallback("view_group")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDFromCallback("view_group:12:34")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDFromCallback("view_group:abc")
	assert.Error(t, err)
}

func TestParseArgsFromCallback(t *testing.T) {
	args, err := ParseArgsFromCallback("set_role:12:7:ADMIN", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "7", "ADMIN"}, args)

	_, err = ParseArgsFromCallback("set_role:12:7", 3)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseTwoIDsFromCallback(t *testing.T) {
	first, second, err := ParseTwoIDsFromCallback("member_actions:12:7")
	require.NoError(t, err)
	assert.Equal(t, int64(12), first)
	assert.Equal(t, int64(7), second)

	_, _, err = ParseTwoIDsFromCallback("member_actions:12:abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseTwoIDsFromCallback("member_actions:12")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
