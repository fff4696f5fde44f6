// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"bytes"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func useBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Logger = nil
	NewUserLog(logging.NoLog{}, &buf)
	t.Cleanup(func() { Logger = nil })
	return &buf
}

func TestPrintToUser(t *testing.T) {
	color.NoColor = true
	buf := useBuffer(t)

	Logger.PrintToUser("Deploying %s", "PlentiLEI")
	Logger.GreenCheckmarkToUser("Deployed")
	Logger.RedXToUser("setAdjuster failed")
	require.Equal(t, "Deploying PlentiLEI\n✓ Deployed\n✗ setAdjuster failed\n", buf.String())
}

func TestNewUserLogKeepsFirstLogger(t *testing.T) {
	buf := useBuffer(t)
	var other bytes.Buffer
	NewUserLog(logging.NoLog{}, &other)
	Logger.PrintToUser("hello")
	require.Equal(t, "hello\n", buf.String())
	require.Empty(t, other.String())
}

func TestPrintTable(t *testing.T) {
	buf := useBuffer(t)
	tbl := DefaultTable("Deployment", table.Row{"Field", "Value"})
	tbl.AppendRow(table.Row{"Contract", "0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25"})
	PrintTable(tbl)
	require.Contains(t, buf.String(), "DEPLOYMENT")
	require.Contains(t, buf.String(), "0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
}

func TestSpinner(t *testing.T) {
	useBuffer(t)
	spinner := NewUserSpinner()
	s := spinner.SpinToUser("Deploying %s", "PlentiLEI")
	SpinComplete(s)
	require.True(t, s.IsComplete())
	spinner.Stop()
	spinner.Stop()
}
