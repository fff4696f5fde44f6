// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"math"
	"math/big"
	"testing"

	"github.com/ava-labs/token-deployer/pkg/recipe"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, typeName string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(typeName, "", nil)
	require.NoError(t, err)
	return typ
}

func arguments(t *testing.T, typeNames ...string) abi.Arguments {
	args := abi.Arguments{}
	for _, typeName := range typeNames {
		args = append(args, abi.Argument{Type: mustType(t, typeName)})
	}
	return args
}

func TestConvertArgs(t *testing.T) {
	adjuster := "0x69592e6f9d21989a043646fE8225da2600e5A0f7"
	tests := []struct {
		name        string
		types       []string
		values      []interface{}
		expected    []interface{}
		expectedErr error
	}{
		{
			name:     "name and symbol",
			types:    []string{"string", "string"},
			values:   []interface{}{"PLENTI-LEI", "PLENTILEI"},
			expected: []interface{}{"PLENTI-LEI", "PLENTILEI"},
		},
		{
			name:     "adjuster",
			types:    []string{"address", "bool"},
			values:   []interface{}{adjuster, true},
			expected: []interface{}{common.HexToAddress(adjuster), true},
		},
		{
			name:     "bool from string",
			types:    []string{"bool"},
			values:   []interface{}{"false"},
			expected: []interface{}{false},
		},
		{
			name:     "uint256 from yaml int and string",
			types:    []string{"uint256", "uint256"},
			values:   []interface{}{1000, "1_000_000_000_000_000_000_000"},
			expected: []interface{}{big.NewInt(1000), new(big.Int).Exp(big.NewInt(10), big.NewInt(21), nil)},
		},
		{
			name:     "small integers",
			types:    []string{"uint8", "int64"},
			values:   []interface{}{18, -5},
			expected: []interface{}{uint8(18), int64(-5)},
		},
		{
			name:     "bytes32",
			types:    []string{"bytes32"},
			values:   []interface{}{"0x" + common.Bytes2Hex(common.HexToHash("0x01").Bytes())},
			expected: []interface{}{[32]byte(common.HexToHash("0x01"))},
		},
		{
			name:     "dynamic bytes",
			types:    []string{"bytes"},
			values:   []interface{}{"0xcafe"},
			expected: []interface{}{[]byte{0xca, 0xfe}},
		},
		{
			name:        "wrong count",
			types:       []string{"string", "string"},
			values:      []interface{}{"PLENTI-LEI"},
			expectedErr: ErrArgumentCount,
		},
		{
			name:        "string expected",
			types:       []string{"string"},
			values:      []interface{}{12},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "bad address",
			types:       []string{"address"},
			values:      []interface{}{"0x1234"},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "bad bool",
			types:       []string{"bool"},
			values:      []interface{}{"maybe"},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "uint8 overflow",
			types:       []string{"uint8"},
			values:      []interface{}{256},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "negative uint",
			types:       []string{"uint256"},
			values:      []interface{}{-1},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "int8 underflow",
			types:       []string{"int8"},
			values:      []interface{}{-129},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "fractional number",
			types:       []string{"uint256"},
			values:      []interface{}{1.5},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "infinity",
			types:       []string{"uint256"},
			values:      []interface{}{math.Inf(1)},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "not a number",
			types:       []string{"int256"},
			values:      []interface{}{math.NaN()},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "float beyond exact range",
			types:       []string{"uint256"},
			values:      []interface{}{1e24},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:     "largest exact float",
			types:    []string{"uint64"},
			values:   []interface{}{float64(1 << 53)},
			expected: []interface{}{uint64(1 << 53)},
		},
		{
			name:        "short bytes32",
			types:       []string{"bytes32"},
			values:      []interface{}{"0xcafe"},
			expectedErr: ErrInvalidArgument,
		},
		{
			name:        "array unsupported",
			types:       []string{"address[]"},
			values:      []interface{}{adjuster},
			expectedErr: ErrUnsupportedArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted, err := ConvertArgs(arguments(t, tt.types...), tt.values)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, converted)
			// converted values must be packable
			_, err = arguments(t, tt.types...).Pack(converted...)
			require.NoError(t, err)
		})
	}
}

func TestConvertRecipeArgsKeepsLargeIntegers(t *testing.T) {
	require := require.New(t)
	r, err := recipe.Parse([]byte(`name: supply
artifact: Token
constructor: [1000000000000000000000001, "PLENTI-LEI"]
calls:
  - method: mint
    args: [0x0de0b6b3a7640001, -9223372036854775809, .inf]
`))
	require.NoError(err)

	converted, err := ConvertArgs(arguments(t, "uint256", "string"), r.Constructor)
	require.NoError(err)
	expected, ok := new(big.Int).SetString("1000000000000000000000001", 10)
	require.True(ok)
	require.Equal([]interface{}{expected, "PLENTI-LEI"}, converted)

	converted, err = ConvertArgs(arguments(t, "uint256", "int256"), r.Calls[0].Args[:2])
	require.NoError(err)
	belowMinInt64, ok := new(big.Int).SetString("-9223372036854775809", 10)
	require.True(ok)
	require.Equal([]interface{}{big.NewInt(1000000000000000001), belowMinInt64}, converted)

	_, err = ConvertArgs(arguments(t, "uint256"), r.Calls[0].Args[2:])
	require.ErrorIs(err, ErrInvalidArgument)
}
