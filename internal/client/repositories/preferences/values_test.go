package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedValues(t *testing.T) {
	r := openStore(t)
	ctx := context.Background()

	_, ok, err := GetBool(ctx, r, KeyKillSwitch)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetBool(ctx, r, KeyKillSwitch, true))
	require.NoError(t, SetString(ctx, r, KeyProtocol, "wg"))

	b, ok, err := GetBool(ctx, r, KeyKillSwitch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	s, ok, err := GetString(ctx, r, KeyProtocol)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "wg", s)

	raw, err := r.Get(ctx, KeyProtocol)
	require.NoError(t, err)
	assert.Equal(t, `"wg"`, string(raw))
}

func TestTypedValues_WrongType(t *testing.T) {
	r := openStore(t)
	ctx := context.Background()

	require.NoError(t, SetString(ctx, r, KeyAllowLAN, "yes"))
	_, _, err := GetBool(ctx, r, KeyAllowLAN)
	require.ErrorContains(t, err, "decode preference[allow_lan]")
}

func TestSetJSON_Unencodable(t *testing.T) {
	r := openStore(t)
	err := SetJSON(context.Background(), r, "bad", make(chan int))
	require.ErrorContains(t, err, "encode preference[bad]")
}
