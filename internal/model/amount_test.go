package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxU128 = "340282366920938463463374607431768211455"

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", a.String())

	// 上限正好是2^128-1
	a, err = ParseAmount(maxU128)
	require.NoError(t, err)
	assert.Equal(t, maxU128, a.String())

	_, err = ParseAmount("340282366920938463463374607431768211456")
	require.ErrorIs(t, err, ErrAmountOverflow)

	_, err = ParseAmount("-1")
	require.Error(t, err)
	_, err = ParseAmount("abc")
	require.Error(t, err)
}

func TestAmountAddOverflow(t *testing.T) {
	max, err := ParseAmount(maxU128)
	require.NoError(t, err)

	sum, err := max.Add(AmountFromUint64(0))
	require.NoError(t, err)
	assert.Equal(t, maxU128, sum.String())

	_, err = max.Add(AmountFromUint64(1))
	require.ErrorIs(t, err, ErrAmountOverflow)
}

func TestAmountSubUnderflow(t *testing.T) {
	a := AmountFromUint64(10)

	diff, err := a.Sub(AmountFromUint64(10))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())

	_, err = a.Sub(AmountFromUint64(11))
	require.ErrorIs(t, err, ErrAmountUnderflow)
}

func TestAmountMulUint64(t *testing.T) {
	a := AmountFromUint64(7)
	p, err := a.MulUint64(6)
	require.NoError(t, err)
	assert.Equal(t, "42", p.String())

	max, err := ParseAmount(maxU128)
	require.NoError(t, err)
	_, err = max.MulUint64(2)
	require.ErrorIs(t, err, ErrAmountOverflow)
}

func TestAmountMin(t *testing.T) {
	a := AmountFromUint64(3)
	b := AmountFromUint64(8)
	assert.Equal(t, 0, a.Min(b).Cmp(a))
	assert.Equal(t, 0, b.Min(a).Cmp(a))
}

func TestAmountJSONRoundTrip(t *testing.T) {
	a, err := ParseAmount(maxU128)
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+maxU128+`"`, string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 0, back.Cmp(a))
}

func TestAmountScan(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan("77"))
	assert.Equal(t, "77", a.String())

	require.NoError(t, a.Scan([]byte("88")))
	assert.Equal(t, "88", a.String())

	require.NoError(t, a.Scan(int64(99)))
	assert.Equal(t, "99", a.String())

	require.Error(t, a.Scan(int64(-1)))
	require.Error(t, a.Scan(3.14))
}
