// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/contract"
	"github.com/ava-labs/token-deployer/pkg/evm"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/mocks"
	"github.com/ava-labs/token-deployer/pkg/recipe"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testRPCURL     = "http://127.0.0.1:9650/ext/bc/C/rpc"
	ewoqPrivateKey = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"
	adjuster       = "0x69592e6f9d21989a043646fE8225da2600e5A0f7"
)

const tokenABI = `[
  {"inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},
  {"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

const tokenV2ABI = `[
  {"inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},
  {"inputs":[{"name":"adjuster","type":"address"},{"name":"allowed","type":"bool"}],"name":"setAdjuster","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var (
	constructorArgs = []interface{}{"PLENTI-LEI", "PLENTILEI"}
	setAdjusterArgs = []interface{}{common.HexToAddress(adjuster), true}
)

type artifactMap map[string]*contract.Artifact

func (m artifactMap) Artifact(name string) (*contract.Artifact, error) {
	if a, ok := m[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", contract.ErrArtifactNotFound, name)
}

func testArtifacts(t *testing.T) artifactMap {
	t.Helper()
	v1, err := contract.ParseArtifact("PlentiLEI", []byte(`{"abi":`+tokenABI+`,"bytecode":"6080"}`))
	require.NoError(t, err)
	v2, err := contract.ParseArtifact("PlentiLEIV2", []byte(`{"abi":`+tokenV2ABI+`,"bytecode":"0x6080"}`))
	require.NoError(t, err)
	return artifactMap{"PlentiLEI": v1, "PlentiLEIV2": v2}
}

func testSigner(t *testing.T) *evm.Signer {
	t.Helper()
	signer, err := evm.NewSignerFromPrivateKey(ewoqPrivateKey)
	require.NoError(t, err)
	return signer
}

func builtin(t *testing.T, name string) *recipe.Recipe {
	t.Helper()
	r, err := recipe.Builtin(name)
	require.NoError(t, err)
	return r
}

func dialerFor(t *testing.T, backend contract.Backend) contract.Dialer {
	return func(_ context.Context, rpcURL string) (contract.Backend, error) {
		require.Equal(t, testRPCURL, rpcURL)
		return backend, nil
	}
}

func failingDialer(t *testing.T) contract.Dialer {
	return func(context.Context, string) (contract.Backend, error) {
		t.Fatal("unexpected dial")
		return nil, nil
	}
}

func receipt(n int64) *types.Receipt {
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: common.BigToHash(big.NewInt(n)),
	}
}

func TestRunV1(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	artifacts := testArtifacts(t)
	contractAddress := common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")

	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Deploy(gomock.Any(), signer, artifacts["PlentiLEI"], constructorArgs).Return(contractAddress, receipt(1), nil),
		backend.EXPECT().Close(),
	)

	d := New(logging.NoLog{}, signers, artifacts, dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei"), Options{RPCURL: testRPCURL})
	require.NoError(err)
	require.Equal(&Result{
		Recipe:          "plentilei",
		Artifact:        "PlentiLEI",
		Account:         constants.DeployerKeyName,
		Deployer:        signer.Address(),
		ContractAddress: contractAddress,
		DeployTxHash:    receipt(1).TxHash,
	}, result)
}

func TestRunV2(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	artifacts := testArtifacts(t)
	contractAddress := common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")

	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Deploy(gomock.Any(), signer, artifacts["PlentiLEIV2"], constructorArgs).Return(contractAddress, receipt(1), nil),
		backend.EXPECT().Transact(
			gomock.Any(),
			signer,
			contractAddress,
			artifacts["PlentiLEIV2"].ABI,
			"setAdjuster",
			setAdjusterArgs,
		).Return(receipt(2), nil).Times(1),
		backend.EXPECT().Close(),
	)

	d := New(logging.NoLog{}, signers, artifacts, dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei-v2"), Options{RPCURL: testRPCURL})
	require.NoError(err)
	require.Equal(contractAddress, result.ContractAddress)
	require.Equal([]CallResult{{Method: "setAdjuster", Args: setAdjusterArgs, TxHash: receipt(2).TxHash}}, result.Calls)
}

func TestRunTwiceDeploysTwice(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	artifacts := testArtifacts(t)
	first := common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
	second := common.HexToAddress("0x4Ac1d98D9cEF99EC6546dEd4Bd550b0b287aaD6D")

	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil).Times(2)
	backend := mocks.NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).Return(first, receipt(1), nil),
		backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).Return(second, receipt(2), nil),
	)
	backend.EXPECT().Close().Times(2)

	d := New(logging.NoLog{}, signers, artifacts, dialerFor(t, backend))
	r1, err := d.Run(context.Background(), builtin(t, "plentilei"), Options{RPCURL: testRPCURL})
	require.NoError(err)
	r2, err := d.Run(context.Background(), builtin(t, "plentilei"), Options{RPCURL: testRPCURL})
	require.NoError(err)
	require.NotEqual(r1.ContractAddress, r2.ContractAddress)
}

func TestRunMissingKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(nil, key.ErrKeyNotFound)

	d := New(logging.NoLog{}, signers, testArtifacts(t), failingDialer(t))
	_, err := d.Run(context.Background(), builtin(t, "plentilei-v2"), Options{RPCURL: testRPCURL})
	require.ErrorIs(t, err, key.ErrKeyNotFound)
}

func TestRunKeyOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner("ops").Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).Return(common.Address{1}, receipt(1), nil)
	backend.EXPECT().Close()

	d := New(logging.NoLog{}, signers, testArtifacts(t), dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei"), Options{RPCURL: testRPCURL, KeyName: "ops"})
	require.NoError(t, err)
	require.Equal(t, "ops", result.Account)
}

func TestRunDeployReverted(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).
		Return(common.Address{}, nil, contract.ErrFailedReceiptStatus)
	backend.EXPECT().Transact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	backend.EXPECT().Close()

	d := New(logging.NoLog{}, signers, testArtifacts(t), dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei-v2"), Options{RPCURL: testRPCURL})
	require.ErrorIs(t, err, contract.ErrFailedReceiptStatus)
	var postDeployErr *PostDeployError
	require.False(t, errors.As(err, &postDeployErr))
	require.Nil(t, result)
}

func TestRunDeployUnconfirmed(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	contractAddress := common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
	txHash := common.HexToHash("0xd1")
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).
		Return(contractAddress, nil, &contract.UnconfirmedTxError{TxHash: txHash, Err: context.DeadlineExceeded})
	backend.EXPECT().Transact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	backend.EXPECT().Close()

	d := New(logging.NoLog{}, signers, testArtifacts(t), dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei-v2"), Options{RPCURL: testRPCURL})
	require.ErrorIs(err, context.DeadlineExceeded)
	var unconfirmedErr *UnconfirmedDeployError
	require.ErrorAs(err, &unconfirmedErr)
	require.Equal(contractAddress, unconfirmedErr.ContractAddress)
	require.Equal(txHash, unconfirmedErr.TxHash)
	var postDeployErr *PostDeployError
	require.False(errors.As(err, &postDeployErr))
	require.NotNil(result)
	require.Equal(contractAddress, result.ContractAddress)
	require.Equal(txHash, result.DeployTxHash)
	require.Equal(signer.Address(), result.Deployer)
	require.Empty(result.Calls)
}

func TestRunConfigurationReverted(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	signer := testSigner(t)
	contractAddress := common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(signer, nil)
	backend := mocks.NewMockBackend(ctrl)
	gomock.InOrder(
		backend.EXPECT().Deploy(gomock.Any(), signer, gomock.Any(), constructorArgs).Return(contractAddress, receipt(1), nil),
		backend.EXPECT().Transact(gomock.Any(), signer, contractAddress, gomock.Any(), "setAdjuster", setAdjusterArgs).
			Return(nil, contract.ErrFailedReceiptStatus),
		backend.EXPECT().Close(),
	)

	d := New(logging.NoLog{}, signers, testArtifacts(t), dialerFor(t, backend))
	result, err := d.Run(context.Background(), builtin(t, "plentilei-v2"), Options{RPCURL: testRPCURL})
	require.ErrorIs(err, contract.ErrFailedReceiptStatus)
	var postDeployErr *PostDeployError
	require.ErrorAs(err, &postDeployErr)
	require.Equal(contractAddress, postDeployErr.ContractAddress)
	require.Equal("setAdjuster", postDeployErr.Method)
	require.Contains(err.Error(), contractAddress.Hex())
	require.NotNil(result)
	require.Equal(contractAddress, result.ContractAddress)
	require.Empty(result.Calls)
}

func TestRunAbortsBeforeDial(t *testing.T) {
	tests := []struct {
		name        string
		recipe      *recipe.Recipe
		noRPCURL    bool
		expectedErr error
	}{
		{
			name:        "invalid recipe",
			recipe:      &recipe.Recipe{Name: "token"},
			expectedErr: recipe.ErrInvalidRecipe,
		},
		{
			name:        "artifact not found",
			recipe:      &recipe.Recipe{Name: "token", Artifact: "PlentiLEIV3", Constructor: constructorArgs},
			expectedErr: contract.ErrArtifactNotFound,
		},
		{
			name:        "constructor argument count",
			recipe:      &recipe.Recipe{Name: "token", Artifact: "PlentiLEI", Constructor: []interface{}{"PLENTI-LEI"}},
			expectedErr: contract.ErrArgumentCount,
		},
		{
			name: "unknown method",
			recipe: &recipe.Recipe{
				Name:        "token",
				Artifact:    "PlentiLEI",
				Constructor: constructorArgs,
				Calls:       []recipe.Call{{Method: "setAdjuster", Args: []interface{}{adjuster, true}}},
			},
			expectedErr: contract.ErrUnknownMethod,
		},
		{
			name: "bad call argument",
			recipe: &recipe.Recipe{
				Name:        "token",
				Artifact:    "PlentiLEIV2",
				Constructor: constructorArgs,
				Calls:       []recipe.Call{{Method: "setAdjuster", Args: []interface{}{"0x1234", true}}},
			},
			expectedErr: contract.ErrInvalidArgument,
		},
		{
			name:        "no rpc url",
			recipe:      &recipe.Recipe{Name: "token", Artifact: "PlentiLEI", Constructor: constructorArgs},
			noRPCURL:    true,
			expectedErr: constants.ErrNoRPCURL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			signers := mocks.NewMockSignerStore(ctrl)
			signers.EXPECT().GetSigner(gomock.Any()).Return(testSigner(t), nil).AnyTimes()
			opts := Options{RPCURL: testRPCURL}
			if tt.noRPCURL {
				opts.RPCURL = ""
			}
			d := New(logging.NoLog{}, signers, testArtifacts(t), failingDialer(t))
			_, err := d.Run(context.Background(), tt.recipe, opts)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestRunDialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	signers := mocks.NewMockSignerStore(ctrl)
	signers.EXPECT().GetSigner(constants.DeployerKeyName).Return(testSigner(t), nil)
	errDial := errors.New("connection refused")
	d := New(logging.NoLog{}, signers, testArtifacts(t), func(context.Context, string) (contract.Backend, error) {
		return nil, errDial
	})
	_, err := d.Run(context.Background(), builtin(t, "plentilei"), Options{RPCURL: testRPCURL})
	require.ErrorIs(t, err, errDial)
}

func TestRunNilRecipe(t *testing.T) {
	d := New(nil, nil, nil, nil)
	_, err := d.Run(context.Background(), nil, Options{})
	require.ErrorIs(t, err, ErrNoRecipe)
}
