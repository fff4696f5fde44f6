// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"github.com/ava-labs/token-deployer/pkg/utils"

	"github.com/ava-labs/libevm/common"
	"github.com/manifoldco/promptui"
)

const (
	Yes = "Yes"
	No  = "No"
)

type Prompter interface {
	CaptureAddress(promptStr string) (common.Address, error)
	CaptureExistingFilepath(promptStr string) (string, error)
	CaptureYesNo(promptStr string) (bool, error)
	CaptureNoYes(promptStr string) (bool, error)
	CaptureList(promptStr string, options []string) (string, error)
	CaptureString(promptStr string) (string, error)
	CapturePassword(promptStr string) (string, error)
	CaptureNewPassword(promptStr string) (string, error)
	CaptureURL(promptStr string) (string, error)
}

type realPrompter struct{}

// Global variable that can be replaced during testing
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// Global variable for Select operations that can be replaced during testing
var promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
	return prompt.Run()
}

func NewPrompter() Prompter {
	return &realPrompter{}
}

func (*realPrompter) CaptureAddress(promptStr string) (common.Address, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: ValidateAddress,
	}

	addressStr, err := promptUIRunner(prompt)
	if err != nil {
		return common.Address{}, err
	}

	return common.HexToAddress(addressStr), nil
}

func (*realPrompter) CaptureExistingFilepath(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateExistingFilepath,
	}

	pathStr, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}

	return utils.ExpandHome(pathStr), nil
}

func yesNoBase(promptStr string, orderedOptions []string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: orderedOptions,
	}
	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureYesNo(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{Yes, No})
}

func (*realPrompter) CaptureNoYes(promptStr string) (bool, error) {
	return yesNoBase(promptStr, []string{No, Yes})
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: options,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	if err != nil {
		return "", err
	}
	return listDecision, nil
}

func (*realPrompter) CaptureString(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validateNonEmpty,
	}

	return promptUIRunner(prompt)
}

// CapturePassword reads a secret without echoing it
func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validateNonEmpty,
	}

	return promptUIRunner(prompt)
}

// CaptureNewPassword asks for a secret twice and fails if both entries differ
func (p *realPrompter) CaptureNewPassword(promptStr string) (string, error) {
	password, err := p.CapturePassword(promptStr)
	if err != nil {
		return "", err
	}
	prompt := promptui.Prompt{
		Label:    "Repeat password",
		Mask:     '*',
		Validate: validatePasswordMatch(password),
	}
	repeated, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}
	if err := validatePasswordMatch(password)(repeated); err != nil {
		return "", err
	}
	return password, nil
}

func (*realPrompter) CaptureURL(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: ValidateURLFormat,
	}

	return promptUIRunner(prompt)
}
