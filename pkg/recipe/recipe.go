// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package recipe holds the declarative description of a deployment: which
// compiled contract to deploy, with which constructor arguments and account,
// and which calls to make on it once deployed.
package recipe

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/utils"

	"gopkg.in/yaml.v3"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRecipe  = errors.New("invalid recipe")
)

//go:embed recipes/*.yaml
var builtinRecipes embed.FS

const builtinDir = "recipes"

// Call is a state changing call made on the deployed contract
type Call struct {
	Method string        `yaml:"method"`
	Args   []interface{} `yaml:"args,omitempty"`
}

type Recipe struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Artifact    string        `yaml:"artifact"`
	Account     string        `yaml:"account,omitempty"`
	Constructor []interface{} `yaml:"constructor,omitempty"`
	Calls       []Call        `yaml:"calls,omitempty"`
}

// Parse decodes a yaml recipe. Unknown fields are rejected and the account
// defaults to the deployer account.
func Parse(bs []byte) (*Recipe, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(bs))
	decoder.KnownFields(true)
	r := &Recipe{}
	if err := decoder.Decode(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	if err := keepIntegerLiterals(bs, r); err != nil {
		return nil, err
	}
	if r.Account == "" {
		r.Account = constants.DeployerKeyName
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// argumentNodes mirrors the argument lists of a recipe as yaml nodes
type argumentNodes struct {
	Constructor []yaml.Node `yaml:"constructor"`
	Calls       []struct {
		Args []yaml.Node `yaml:"args"`
	} `yaml:"calls"`
}

// keepIntegerLiterals replaces the integer arguments of [r] with exact big
// integers taken from their literal text. yaml decodes integers beyond 64
// bits as floats, losing digits.
func keepIntegerLiterals(bs []byte, r *Recipe) error {
	var nodes argumentNodes
	if err := yaml.Unmarshal(bs, &nodes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	replaceIntegers(r.Constructor, nodes.Constructor)
	for i := range r.Calls {
		if i < len(nodes.Calls) {
			replaceIntegers(r.Calls[i].Args, nodes.Calls[i].Args)
		}
	}
	return nil
}

func replaceIntegers(values []interface{}, nodes []yaml.Node) {
	for i := range values {
		if i >= len(nodes) {
			return
		}
		node := nodes[i]
		if node.Kind != yaml.ScalarNode || node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
			continue
		}
		if tag := node.ShortTag(); tag != "!!int" && tag != "!!float" {
			continue
		}
		if n, ok := new(big.Int).SetString(strings.ReplaceAll(node.Value, "_", ""), 0); ok {
			values[i] = n
		}
	}
}

func LoadFile(recipePath string) (*Recipe, error) {
	recipePath = utils.ExpandHome(recipePath)
	bs, err := os.ReadFile(recipePath)
	if err != nil {
		return nil, fmt.Errorf("failure reading recipe file %s: %w", recipePath, err)
	}
	r, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", recipePath, err)
	}
	return r, nil
}

func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecipe)
	}
	if strings.TrimSpace(r.Artifact) == "" {
		return fmt.Errorf("%w: %s has no artifact", ErrInvalidRecipe, r.Name)
	}
	for i, call := range r.Calls {
		if strings.TrimSpace(call.Method) == "" {
			return fmt.Errorf("%w: %s call #%d has no method", ErrInvalidRecipe, r.Name, i)
		}
	}
	return nil
}

// AccountName returns the account that signs for the recipe, [override]
// taking precedence when given
func (r *Recipe) AccountName(override string) string {
	switch {
	case override != "":
		return override
	case r.Account != "":
		return r.Account
	}
	return constants.DeployerKeyName
}

func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Builtin returns a fresh copy of the embedded recipe called [name]
func Builtin(name string) (*Recipe, error) {
	bs, err := builtinRecipes.ReadFile(path.Join(builtinDir, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	return Parse(bs)
}

// Builtins returns all embedded recipes sorted by name
func Builtins() ([]*Recipe, error) {
	entries, err := builtinRecipes.ReadDir(builtinDir)
	if err != nil {
		return nil, err
	}
	recipes := make([]*Recipe, 0, len(entries))
	for _, entry := range entries {
		bs, err := builtinRecipes.ReadFile(path.Join(builtinDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		r, err := Parse(bs)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", entry.Name(), err)
		}
		recipes = append(recipes, r)
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})
	return recipes, nil
}

// Load resolves [recipePath] when given, otherwise the builtin [name]
func Load(name string, recipePath string) (*Recipe, error) {
	if recipePath != "" {
		return LoadFile(recipePath)
	}
	if name == "" {
		name = constants.DefaultRecipe
	}
	return Builtin(name)
}
