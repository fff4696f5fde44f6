// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	BaseDirName = ".token-deployer"
	LogDir      = "logs"
	KeyDir      = "key"
	ConfigFile  = "config.json"

	DeploymentsFile = "deployments.json"

	KeySuffix      = ".pk"
	KeystoreSuffix = ".json"

	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	// DeployerKeyName is the credential recipes sign with unless they name another one.
	DeployerKeyName = "deployer_account"

	DefaultRecipe       = "plentilei"
	DefaultArtifactsDir = "build/contracts"

	APIRequestTimeout      = 30 * time.Second
	APIRequestLargeTimeout = 2 * time.Minute
	DeployTimeout          = 5 * time.Minute

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0

	EnvPrefix = "TOKEN_DEPLOYER"

	ConfigRPCURLKey       = "rpc-url"
	ConfigArtifactsDirKey = "artifacts-dir"
	ConfigKeyNameKey      = "key"
)
