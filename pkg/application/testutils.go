// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
)

func NewTestApp(t *testing.T) *TokenDeployer {
	tempDir := t.TempDir()
	return &TokenDeployer{
		baseDir: tempDir,
		Log:     logging.NoLog{},
	}
}
