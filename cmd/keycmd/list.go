// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/utils"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/ava-labs/libevm/common"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	softKeyType  = "soft"
	keystoreType = "keystore"
)

type keyInfo struct {
	name    string
	keyType string
	address string
}

// token-deployer key list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored signing keys",
		Long: `The key list command prints the name, storage type and address of every
stored signing key. Keystore addresses are read without decrypting the key.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         listKeys,
		SilenceUsage: true,
	}
}

func listKeys(_ *cobra.Command, _ []string) error {
	infos, err := getKeyInfos()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		ux.Logger.PrintToUser("No keys found. Use 'token-deployer key create' to create one")
		return nil
	}
	printKeyInfos(os.Stdout, infos)
	return nil
}

func getKeyInfos() ([]keyInfo, error) {
	names, err := app.GetKeyNames()
	if err != nil {
		return nil, err
	}
	infos := []keyInfo{}
	for _, name := range names {
		if utils.FileExists(app.GetKeyPath(name)) {
			info := keyInfo{name: name, keyType: softKeyType}
			if k, err := key.LoadSoft(app.GetKeyPath(name)); err != nil {
				info.address = "invalid key: " + err.Error()
			} else {
				info.address = k.C()
			}
			infos = append(infos, info)
		}
		if utils.FileExists(app.GetKeystorePath(name)) {
			infos = append(infos, keyInfo{
				name:    name,
				keyType: keystoreType,
				address: keystoreAddress(app.GetKeystorePath(name)),
			})
		}
	}
	return infos, nil
}

func keystoreAddress(keystorePath string) string {
	bs, err := os.ReadFile(keystorePath)
	if err != nil {
		return "unreadable keystore"
	}
	var k struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(bs, &k); err != nil || !common.IsHexAddress(k.Address) {
		return "invalid keystore"
	}
	return common.HexToAddress(k.Address).Hex()
}

func printKeyInfos(w io.Writer, infos []keyInfo) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key Name", "Type", "Address"})
	table.SetRowLine(true)
	table.SetAutoMergeCells(true)
	for _, info := range infos {
		table.Append([]string{info.name, info.keyType, info.address})
	}
	table.Render()
}
