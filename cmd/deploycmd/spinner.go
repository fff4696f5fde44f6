// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"

	"github.com/ava-labs/token-deployer/pkg/contract"
	"github.com/ava-labs/token-deployer/pkg/evm"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
)

// spinningBackend shows a spinner while waiting for each transaction
type spinningBackend struct {
	contract.Backend
	spinner *ux.UserSpinner
}

func spinningDialer(dial contract.Dialer) contract.Dialer {
	return func(ctx context.Context, rpcURL string) (contract.Backend, error) {
		backend, err := dial(ctx, rpcURL)
		if err != nil {
			return nil, err
		}
		return &spinningBackend{
			Backend: backend,
			spinner: ux.NewUserSpinner(),
		}, nil
	}
}

func (b *spinningBackend) Deploy(
	ctx context.Context,
	signer *evm.Signer,
	artifact *contract.Artifact,
	args []interface{},
) (common.Address, *types.Receipt, error) {
	sp := b.spinner.SpinToUser("Deploying %s", artifact.Name)
	address, receipt, err := b.Backend.Deploy(ctx, signer, artifact, args)
	if err != nil {
		ux.SpinFailWithError(sp, "", err)
	} else {
		ux.SpinComplete(sp)
	}
	return address, receipt, err
}

func (b *spinningBackend) Transact(
	ctx context.Context,
	signer *evm.Signer,
	contractAddress common.Address,
	contractABI abi.ABI,
	method string,
	args []interface{},
) (*types.Receipt, error) {
	sp := b.spinner.SpinToUser("Calling %s", method)
	receipt, err := b.Backend.Transact(ctx, signer, contractAddress, contractABI, method, args)
	if err != nil {
		ux.SpinFailWithError(sp, "", err)
	} else {
		ux.SpinComplete(sp)
	}
	return receipt, err
}

func (b *spinningBackend) Close() {
	b.spinner.Stop()
	b.Backend.Close()
}
