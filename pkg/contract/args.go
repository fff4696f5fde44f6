// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
)

var (
	ErrUnknownMethod       = errors.New("unknown contract method")
	ErrArgumentCount       = errors.New("wrong number of arguments")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnsupportedArgument = errors.New("unsupported argument type")
)

var bigIntType = reflect.TypeOf(&big.Int{})

// floats hold every integer exactly only up to 2^53
const maxExactFloat = 1 << 53

// ConvertArgs converts loosely typed values, as decoded from yaml or taken
// from the command line, into the go types [inputs] expects when packing.
func ConvertArgs(inputs abi.Arguments, values []interface{}) ([]interface{}, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrArgumentCount, len(inputs), len(values))
	}
	converted := make([]interface{}, len(values))
	for i, input := range inputs {
		v, err := convertArg(input.Type, values[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		converted[i] = v
	}
	return converted, nil
}

func convertArg(t abi.Type, value interface{}) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %T", ErrInvalidArgument, value)
		}
		return s, nil
	case abi.BoolTy:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a bool", ErrInvalidArgument, v)
			}
			return b, nil
		}
		return nil, fmt.Errorf("%w: expected bool, got %T", ErrInvalidArgument, value)
	case abi.AddressTy:
		switch v := value.(type) {
		case common.Address:
			return v, nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("%w: %q is not an address", ErrInvalidArgument, v)
			}
			return common.HexToAddress(v), nil
		}
		return nil, fmt.Errorf("%w: expected address, got %T", ErrInvalidArgument, value)
	case abi.IntTy, abi.UintTy:
		return convertInteger(t, value)
	case abi.FixedBytesTy, abi.BytesTy:
		return convertBytes(t, value)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedArgument, t.String())
}

func toBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case float64:
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidArgument, v)
		}
		if math.Abs(v) > maxExactFloat {
			return nil, fmt.Errorf("%w: %v is too large to be exact, write it as a quoted string", ErrInvalidArgument, v)
		}
		return big.NewInt(int64(v)), nil
	case string:
		n, ok := new(big.Int).SetString(strings.ReplaceAll(v, "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidArgument, v)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: expected integer, got %T", ErrInvalidArgument, value)
}

func convertInteger(t abi.Type, value interface{}) (interface{}, error) {
	n, err := toBigInt(value)
	if err != nil {
		return nil, err
	}
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%w: %s out of range for %s", ErrInvalidArgument, n, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		minValue := new(big.Int).Neg(limit)
		maxValue := new(big.Int).Sub(limit, big.NewInt(1))
		if n.Cmp(minValue) < 0 || n.Cmp(maxValue) > 0 {
			return nil, fmt.Errorf("%w: %s out of range for %s", ErrInvalidArgument, n, t.String())
		}
	}
	goType := t.GetType()
	if goType == bigIntType {
		return n, nil
	}
	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}

func convertBytes(t abi.Type, value interface{}) (interface{}, error) {
	var bs []byte
	switch v := value.(type) {
	case []byte:
		bs = v
	case string:
		var err error
		bs, err = hex.DecodeString(strings.TrimPrefix(v, "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not hex", ErrInvalidArgument, v)
		}
	default:
		return nil, fmt.Errorf("%w: expected hex string, got %T", ErrInvalidArgument, value)
	}
	if t.T == abi.BytesTy {
		return bs, nil
	}
	if len(bs) != t.Size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidArgument, t.Size, len(bs))
	}
	arr := reflect.New(t.GetType()).Elem()
	reflect.Copy(arr, reflect.ValueOf(bs))
	return arr.Interface(), nil
}
