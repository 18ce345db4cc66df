// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"strings"
	"testing"
)

func TestValidation_Greeting(t *testing.T) {
	iv := newInputValidator()

	tests := []struct {
		name     string
		greeting string
		wantErr  bool
	}{
		{name: "no authentication", greeting: "PJLINK 0", wantErr: false},
		{name: "authentication with seed", greeting: "PJLINK 1 498e4a67", wantErr: false},
		{name: "authentication error", greeting: "PJLINK ERRA", wantErr: false},
		{name: "authentication without seed", greeting: "PJLINK 1 ", wantErr: true},
		{name: "seed with space", greeting: "PJLINK 1 498e 4a67", wantErr: true},
		{name: "seed with control byte", greeting: "PJLINK 1 498e\x014a67", wantErr: true},
		{name: "unknown class", greeting: "PJLINK 2", wantErr: true},
		{name: "lower case", greeting: "pjlink 0", wantErr: true},
		{name: "empty string", greeting: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := iv.ValidateGreeting(tt.greeting)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGreeting() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsPJLinkError(err, ErrValidation) {
				t.Errorf("ValidateGreeting() error code = %v, want validation", GetErrorCode(err))
			}
		})
	}
}

func TestValidation_Response(t *testing.T) {
	iv := newInputValidator()
	powerQuery := Query(CmdPower)

	tests := []struct {
		name     string
		cmd      Command
		response string
		wantErr  bool
	}{
		{name: "power status", cmd: powerQuery, response: "%1POWR=1", wantErr: false},
		{name: "power error code", cmd: powerQuery, response: "%1POWR=ERR3", wantErr: false},
		{name: "empty value", cmd: Query(CmdName), response: "%1NAME=", wantErr: false},
		{name: "long free text", cmd: Query(CmdName), response: "%1NAME=" + strings.Repeat("x", 200), wantErr: false},
		{name: "wrong command", cmd: powerQuery, response: "%1AVMT=31", wantErr: true},
		{name: "missing separator", cmd: powerQuery, response: "%1POWR 1", wantErr: true},
		{name: "class 2 header", cmd: powerQuery, response: "%2POWR=1", wantErr: true},
		{name: "empty", cmd: powerQuery, response: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := iv.ValidateResponse(tt.cmd, tt.response)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidation_Command(t *testing.T) {
	iv := newInputValidator()

	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{name: "power on", cmd: PowerCommand(true), wantErr: false},
		{name: "query", cmd: Query(CmdManufacturer), wantErr: false},
		{name: "short code", cmd: Command{Code: "POW", Param: "1"}, wantErr: true},
		{name: "lower case code", cmd: Command{Code: "powr", Param: "1"}, wantErr: true},
		{name: "empty param", cmd: Command{Code: CmdPower}, wantErr: true},
		{name: "embedded terminator", cmd: Command{Code: CmdPower, Param: "1\r%1POWR 0"}, wantErr: true},
		{name: "non-ascii param", cmd: Command{Code: CmdInput, Param: "3é"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := iv.ValidateCommand(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidation_Input(t *testing.T) {
	iv := newInputValidator()

	tests := []struct {
		name      string
		inputType InputType
		index     int
		wantErr   bool
	}{
		{name: "rgb 1", inputType: InputRGB, index: 1, wantErr: false},
		{name: "network 9", inputType: InputNetwork, index: 9, wantErr: false},
		{name: "type zero", inputType: 0, index: 1, wantErr: true},
		{name: "type six", inputType: 6, index: 1, wantErr: true},
		{name: "index zero", inputType: InputDigital, index: 0, wantErr: true},
		{name: "index ten", inputType: InputDigital, index: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := iv.ValidateInput(tt.inputType, tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidation_ASCII(t *testing.T) {
	iv := newInputValidator()

	if err := iv.ValidateASCII("Room 204 Projector"); err != nil {
		t.Errorf("ValidateASCII() unexpected error: %v", err)
	}
	if err := iv.ValidateASCII("tab\there"); err == nil {
		t.Error("ValidateASCII() expected error for tab")
	}
	if err := iv.ValidateASCII("café"); err == nil {
		t.Error("ValidateASCII() expected error for non-ASCII")
	}
}
