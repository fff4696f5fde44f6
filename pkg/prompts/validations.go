// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/ava-labs/libevm/common"
)

var (
	errEmptyString      = errors.New("string cannot be empty")
	errFileNoExists     = errors.New("file doesn't exist")
	errInvalidAddress   = errors.New("invalid address")
	errPasswordMismatch = errors.New("passwords do not match")
)

func validateNonEmpty(input string) error {
	if input == "" {
		return errEmptyString
	}
	return nil
}

func validateExistingFilepath(input string) error {
	if fileInfo, err := os.Stat(input); err == nil && !fileInfo.IsDir() {
		return nil
	}
	return errFileNoExists
}

func ValidateAddress(input string) error {
	if !common.IsHexAddress(input) {
		return errInvalidAddress
	}
	return nil
}

func ValidateURLFormat(input string) error {
	u, err := url.ParseRequestURI(input)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url %q should include scheme and host", input)
	}
	return nil
}

func validatePasswordMatch(password string) func(string) error {
	return func(input string) error {
		if input != password {
			return errPasswordMismatch
		}
		return nil
	}
}
