// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ava-labs/token-deployer/pkg/utils"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/spf13/afero"
)

var (
	ErrArtifactNotFound = errors.New("contract artifact not found")
	ErrInvalidArtifact  = errors.New("invalid contract artifact")
)

// Artifact is a compiled contract ready to be deployed
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// ArtifactSource resolves compiled contracts by name
type ArtifactSource interface {
	Artifact(name string) (*Artifact, error)
}

// ArtifactDir looks up artifacts in a build directory. Both flat layouts
// (brownie build/contracts/<Name>.json, hardhat style exports) and foundry
// layouts (out/<Name>.sol/<Name>.json) are searched.
type ArtifactDir struct {
	fs  afero.Fs
	Dir string
}

func NewArtifactDir(dir string) ArtifactDir {
	return NewArtifactDirFs(afero.NewOsFs(), dir)
}

func NewArtifactDirFs(fs afero.Fs, dir string) ArtifactDir {
	return ArtifactDir{fs: fs, Dir: utils.ExpandHome(dir)}
}

func (d ArtifactDir) candidates(name string) []string {
	return []string{
		filepath.Join(d.Dir, name+".json"),
		filepath.Join(d.Dir, name+".sol", name+".json"),
	}
}

func (d ArtifactDir) Artifact(name string) (*Artifact, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty contract name", ErrArtifactNotFound)
	}
	for _, path := range d.candidates(name) {
		if isFile, err := afero.Exists(d.fs, path); err != nil {
			return nil, err
		} else if !isFile {
			continue
		}
		bs, err := afero.ReadFile(d.fs, path)
		if err != nil {
			return nil, err
		}
		artifact, err := ParseArtifact(name, bs)
		if err != nil {
			return nil, fmt.Errorf("failure loading %s: %w", path, err)
		}
		return artifact, nil
	}
	return nil, fmt.Errorf("%w: %s (searched %s)", ErrArtifactNotFound, name, strings.Join(d.candidates(name), ", "))
}

type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type bytecodeObject struct {
	Object string `json:"object"`
}

// ParseArtifact decodes a compiler output json. [bytecode] may either be a
// hex string, with or without 0x prefix, or an object with an [object] hex field.
func ParseArtifact(name string, bs []byte) (*Artifact, error) {
	var f artifactFile
	if err := json.Unmarshal(bs, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if len(f.ABI) == 0 || string(f.ABI) == "null" {
		return nil, fmt.Errorf("%w: missing abi", ErrInvalidArtifact)
	}
	contractABI, err := abi.JSON(bytes.NewReader(f.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: bad abi: %w", ErrInvalidArtifact, err)
	}
	bytecodeHex, err := decodeBytecodeField(f.Bytecode)
	if err != nil {
		return nil, err
	}
	bytecode, err := decodeBytecode(bytecodeHex)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = f.ContractName
	}
	return &Artifact{
		Name:     name,
		ABI:      contractABI,
		Bytecode: bytecode,
	}, nil
}

func decodeBytecodeField(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: missing bytecode", ErrInvalidArtifact)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj bytecodeObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("%w: unexpected bytecode format", ErrInvalidArtifact)
	}
	return obj.Object, nil
}

func decodeBytecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, fmt.Errorf("%w: empty bytecode (abstract contract or interface?)", ErrInvalidArtifact)
	}
	if strings.Contains(s, "__") {
		return nil, fmt.Errorf("%w: bytecode has unlinked library references", ErrInvalidArtifact)
	}
	bs, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bytecode is not hex: %w", ErrInvalidArtifact, err)
	}
	return bs, nil
}

// Method returns the ABI definition of [method]
func (a *Artifact) Method(method string) (abi.Method, error) {
	m, ok := a.ABI.Methods[method]
	if !ok {
		return abi.Method{}, fmt.Errorf("%w: %s has no method %q", ErrUnknownMethod, a.Name, method)
	}
	return m, nil
}
