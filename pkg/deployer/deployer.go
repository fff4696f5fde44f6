// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer runs recipes: it deploys the recipe's contract and then
// makes the recipe's calls on it, in order, with the same account.
package deployer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/contract"
	"github.com/ava-labs/token-deployer/pkg/evm"
	"github.com/ava-labs/token-deployer/pkg/recipe"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"go.uber.org/zap"
)

var ErrNoRecipe = errors.New("no recipe given")

// SignerStore resolves named local accounts
type SignerStore interface {
	GetSigner(name string) (*evm.Signer, error)
}

type Options struct {
	RPCURL string
	// KeyName overrides the recipe account
	KeyName string
}

type CallResult struct {
	Method string
	Args   []interface{}
	TxHash common.Hash
}

type Result struct {
	Recipe          string
	Artifact        string
	Account         string
	Deployer        common.Address
	ContractAddress common.Address
	DeployTxHash    common.Hash
	Calls           []CallResult
}

// PostDeployError reports a contract that got deployed but whose
// configuration did not complete
type PostDeployError struct {
	ContractAddress common.Address
	Method          string
	Err             error
}

func (e *PostDeployError) Error() string {
	return fmt.Sprintf(
		"contract deployed at %s but call to %s failed, it is left unconfigured: %s",
		e.ContractAddress.Hex(),
		e.Method,
		e.Err,
	)
}

func (e *PostDeployError) Unwrap() error {
	return e.Err
}

// UnconfirmedDeployError reports a deployment transaction that was sent
// but never confirmed. The contract may still appear at ContractAddress.
type UnconfirmedDeployError struct {
	ContractAddress common.Address
	TxHash          common.Hash
	Err             error
}

func (e *UnconfirmedDeployError) Error() string {
	return fmt.Sprintf(
		"deployment of contract at %s was sent but not confirmed, its calls were not made: %s",
		e.ContractAddress.Hex(),
		e.Err,
	)
}

func (e *UnconfirmedDeployError) Unwrap() error {
	return e.Err
}

type Deployer struct {
	log       logging.Logger
	signers   SignerStore
	artifacts contract.ArtifactSource
	dial      contract.Dialer
}

func New(
	log logging.Logger,
	signers SignerStore,
	artifacts contract.ArtifactSource,
	dial contract.Dialer,
) *Deployer {
	if log == nil {
		log = logging.NoLog{}
	}
	if dial == nil {
		dial = contract.Dial
	}
	return &Deployer{
		log:       log,
		signers:   signers,
		artifacts: artifacts,
		dial:      dial,
	}
}

type preparedCall struct {
	method string
	args   []interface{}
}

// Run deploys the contract of [r] and makes its calls.
// Everything that can be checked locally (account, artifact, arguments) is
// checked before connecting to [opts.RPCURL]. A deployment sent but not
// confirmed is returned as a *UnconfirmedDeployError and a failure after the
// deploy as a *PostDeployError, both along with the partial result.
func (d *Deployer) Run(ctx context.Context, r *recipe.Recipe, opts Options) (*Result, error) {
	if r == nil {
		return nil, ErrNoRecipe
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	account := r.AccountName(opts.KeyName)
	signer, err := d.signers.GetSigner(account)
	if err != nil {
		return nil, fmt.Errorf("failure loading account %s: %w", account, err)
	}
	artifact, err := d.artifacts.Artifact(r.Artifact)
	if err != nil {
		return nil, err
	}
	constructorArgs, err := contract.ConvertArgs(artifact.ABI.Constructor.Inputs, r.Constructor)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.Name, err)
	}
	calls := make([]preparedCall, 0, len(r.Calls))
	for _, call := range r.Calls {
		method, err := artifact.Method(call.Method)
		if err != nil {
			return nil, err
		}
		args, err := contract.ConvertArgs(method.Inputs, call.Args)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", artifact.Name, call.Method, err)
		}
		calls = append(calls, preparedCall{method: call.Method, args: args})
	}

	if opts.RPCURL == "" {
		return nil, constants.ErrNoRPCURL
	}
	backend, err := d.dial(ctx, opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failure connecting to %s: %w", opts.RPCURL, err)
	}
	defer backend.Close()

	d.log.Info("deploying contract",
		zap.String("recipe", r.Name),
		zap.String("artifact", artifact.Name),
		zap.String("account", account),
		zap.Stringer("deployer", signer.Address()),
	)
	address, receipt, err := backend.Deploy(ctx, signer, artifact, constructorArgs)
	result := &Result{
		Recipe:          r.Name,
		Artifact:        artifact.Name,
		Account:         account,
		Deployer:        signer.Address(),
		ContractAddress: address,
	}
	if err != nil {
		if address == (common.Address{}) {
			return nil, err
		}
		var unconfirmed *contract.UnconfirmedTxError
		if errors.As(err, &unconfirmed) {
			result.DeployTxHash = unconfirmed.TxHash
		}
		d.log.Warn("contract deployment not confirmed",
			zap.Stringer("address", address),
			zap.Stringer("txHash", result.DeployTxHash),
			zap.Error(err),
		)
		return result, &UnconfirmedDeployError{
			ContractAddress: address,
			TxHash:          result.DeployTxHash,
			Err:             err,
		}
	}
	if receipt != nil {
		result.DeployTxHash = receipt.TxHash
	}
	d.log.Info("contract deployed",
		zap.Stringer("address", address),
		zap.Stringer("txHash", result.DeployTxHash),
	)

	for _, call := range calls {
		d.log.Info("calling contract",
			zap.Stringer("address", address),
			zap.String("method", call.method),
		)
		receipt, err := backend.Transact(ctx, signer, address, artifact.ABI, call.method, call.args)
		if err != nil {
			d.log.Error("contract left unconfigured",
				zap.Stringer("address", address),
				zap.String("method", call.method),
				zap.Error(err),
			)
			return result, &PostDeployError{
				ContractAddress: address,
				Method:          call.method,
				Err:             err,
			}
		}
		callResult := CallResult{Method: call.method, Args: call.args}
		if receipt != nil {
			callResult.TxHash = receipt.TxHash
		}
		result.Calls = append(result.Calls, callResult)
	}
	return result, nil
}
