// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/deployer"

	"go.uber.org/zap"
)

// DeploymentRecord is an entry of the local deployment history
type DeploymentRecord struct {
	Time            time.Time
	Recipe          string
	Artifact        string
	RPCURL          string
	Deployer        string
	ContractAddress string
	DeployTxHash    string
	CallTxHashes    []string
	// FailedCall is set when the contract was left unconfigured
	FailedCall string `json:",omitempty"`
	// Unconfirmed is set when the deployment was sent but never confirmed
	Unconfirmed bool `json:",omitempty"`
}

// NewDeploymentRecord describes the outcome of a run that deployed a
// contract. [runErr] is the error returned together with [result], if any.
func NewDeploymentRecord(rpcURL string, result *deployer.Result, runErr error) DeploymentRecord {
	record := DeploymentRecord{
		Time:            time.Now().UTC(),
		Recipe:          result.Recipe,
		Artifact:        result.Artifact,
		RPCURL:          rpcURL,
		Deployer:        result.Deployer.Hex(),
		ContractAddress: result.ContractAddress.Hex(),
		DeployTxHash:    result.DeployTxHash.Hex(),
	}
	for _, call := range result.Calls {
		record.CallTxHashes = append(record.CallTxHashes, call.TxHash.Hex())
	}
	var postDeployErr *deployer.PostDeployError
	if errors.As(runErr, &postDeployErr) {
		record.FailedCall = postDeployErr.Method
	}
	var unconfirmedErr *deployer.UnconfirmedDeployError
	if errors.As(runErr, &unconfirmedErr) {
		record.Unconfirmed = true
	}
	return record
}

func (r DeploymentRecord) Unconfigured() bool {
	return r.FailedCall != ""
}

func (app *TokenDeployer) GetDeploymentsPath() string {
	return filepath.Join(app.baseDir, constants.DeploymentsFile)
}

func (app *TokenDeployer) LoadDeployments() ([]DeploymentRecord, error) {
	bs, err := os.ReadFile(app.GetDeploymentsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	records := []DeploymentRecord{}
	if err := json.Unmarshal(bs, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RecordDeployment appends [record] to the deployment history. The history
// is informational only: failures are logged and otherwise ignored.
func (app *TokenDeployer) RecordDeployment(record DeploymentRecord) {
	records, err := app.LoadDeployments()
	if err != nil {
		app.Log.Warn("failed to read the deployments file! This is non-critical but is logged", zap.Error(err))
		return
	}
	records = append(records, record)
	bs, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		app.Log.Warn("failed to marshal deployments! This is non-critical but is logged", zap.Error(err))
		return
	}
	if err := os.WriteFile(app.GetDeploymentsPath(), bs, constants.WriteReadReadPerms); err != nil {
		app.Log.Warn("failed to write the deployments file! This is non-critical but is logged", zap.Error(err))
	}
}
