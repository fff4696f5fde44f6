// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrNoRPCURL       = errors.New("no rpc endpoint given. Use --rpc or 'token-deployer config set rpc-url <url>'")
	ErrUnsupportedKey = errors.New("unknown config key")
)
