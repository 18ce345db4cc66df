// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"strings"
)

// InputValidator validates caller input and device replies before they are trusted.
type InputValidator struct{}

// newInputValidator creates a new input validator.
func newInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateGreeting validates the line a device sends when a connection opens.
// Accepted forms are "PJLINK 0", "PJLINK 1 <seed>" and "PJLINK ERRA".
func (iv *InputValidator) ValidateGreeting(greeting string) error {
	switch {
	case greeting == greetingNoAuth, greeting == authErrorReply:
		return nil
	case strings.HasPrefix(greeting, greetingAuthPrefix):
		seed := greeting[len(greetingAuthPrefix):]
		if seed == "" {
			return validationError("InputValidator.ValidateGreeting",
				"authentication greeting carries no seed", nil)
		}
		if strings.ContainsAny(seed, " \t") {
			return validationError("InputValidator.ValidateGreeting",
				fmt.Sprintf("seed %q contains whitespace", seed), nil)
		}
		return iv.ValidateASCII(seed)
	default:
		return validationError("InputValidator.ValidateGreeting",
			fmt.Sprintf("unexpected greeting %q", greeting), nil)
	}
}

// ValidateResponse reports whether a trimmed response carries the header of
// the given command. Free text after the header is not limited.
func (iv *InputValidator) ValidateResponse(cmd Command, response string) error {
	prefix := cmd.responsePrefix()
	if !strings.HasPrefix(response, prefix) {
		return validationError("InputValidator.ValidateResponse",
			fmt.Sprintf("response %q does not answer %s", response, cmd.Code), nil)
	}

	return nil
}

// ValidateCommand validates a command before it is written to the wire.
func (iv *InputValidator) ValidateCommand(cmd Command) error {
	if len(cmd.Code) != 4 {
		return validationError("InputValidator.ValidateCommand",
			fmt.Sprintf("command code must be four characters, got %q", cmd.Code), nil)
	}

	for i := 0; i < len(cmd.Code); i++ {
		c := cmd.Code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return validationError("InputValidator.ValidateCommand",
				fmt.Sprintf("command code %q must be upper case alphanumeric", cmd.Code), nil)
		}
	}

	if cmd.Param == "" {
		return validationError("InputValidator.ValidateCommand", "command parameter cannot be empty", nil)
	}

	if strings.ContainsAny(cmd.Param, "\r\n") {
		return validationError("InputValidator.ValidateCommand",
			"command parameter cannot contain line terminators", nil)
	}

	return iv.ValidateASCII(cmd.Param)
}

// ValidateInput validates an input class and index.
func (iv *InputValidator) ValidateInput(inputType InputType, index int) error {
	if inputType < InputRGB || inputType > InputNetwork {
		return validationError("InputValidator.ValidateInput",
			fmt.Sprintf("input type must be between %d and %d, got %d", InputRGB, InputNetwork, inputType), nil)
	}

	if index < 1 || index > 9 {
		return validationError("InputValidator.ValidateInput",
			fmt.Sprintf("input index must be between 1 and 9, got %d", index), nil)
	}

	return nil
}

// ValidateASCII validates that text only contains printable ASCII.
func (iv *InputValidator) ValidateASCII(text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] < 0x20 || text[i] > 0x7E {
			return validationError("InputValidator.ValidateASCII",
				fmt.Sprintf("non-printable ASCII byte 0x%02X at position %d", text[i], i), nil)
		}
	}
	return nil
}
