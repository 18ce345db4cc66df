// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"strconv"
	"strings"
)

// PJLink protocol constants.
const (
	DefaultPort = 4352

	// Class1Header prefixes every class 1 command and response.
	Class1Header = "%1"

	// Terminator ends every command and response. No other line ending is recognized.
	Terminator = "\r"

	// QueryParam is the parameter sent with query commands.
	QueryParam = "?"
)

// CommandCode is a four letter PJLink command.
type CommandCode string

// Class 1 command codes.
const (
	CmdPower        CommandCode = "POWR"
	CmdInput        CommandCode = "INPT"
	CmdAVMute       CommandCode = "AVMT"
	CmdErrorStatus  CommandCode = "ERST"
	CmdLamp         CommandCode = "LAMP"
	CmdInputList    CommandCode = "INST"
	CmdName         CommandCode = "NAME"
	CmdManufacturer CommandCode = "INF1"
	CmdModel        CommandCode = "INF2"
	CmdOtherInfo    CommandCode = "INFO"
	CmdClass        CommandCode = "CLSS"
)

// Command is a single PJLink request.
type Command struct {
	Code  CommandCode
	Param string
}

// Query returns the query form of a command, e.g. "%1POWR ?\r".
func Query(code CommandCode) Command {
	return Command{Code: code, Param: QueryParam}
}

// String renders the command in wire form including the trailing carriage return.
func (c Command) String() string {
	return Class1Header + string(c.Code) + " " + c.Param + Terminator
}

// responsePrefix is the header a device uses when answering this command.
func (c Command) responsePrefix() string {
	return Class1Header + string(c.Code) + "="
}

// PowerCommand returns the command that switches the projector on or off.
func PowerCommand(on bool) Command {
	if on {
		return Command{Code: CmdPower, Param: "1"}
	}
	return Command{Code: CmdPower, Param: "0"}
}

// InputType is the first digit of a PJLink input code.
type InputType int

// Input classes.
const (
	InputRGB     InputType = 1
	InputVideo   InputType = 2
	InputDigital InputType = 3
	InputStorage InputType = 4
	InputNetwork InputType = 5
)

// String returns the input class name.
func (t InputType) String() string {
	switch t {
	case InputRGB:
		return "RGB"
	case InputVideo:
		return "Video"
	case InputDigital:
		return "Digital"
	case InputStorage:
		return "Storage"
	case InputNetwork:
		return "Network"
	default:
		return "Unknown"
	}
}

// Input identifies a projector source by class and index within the class.
type Input struct {
	Type  InputType
	Index int
}

// Code returns the two digit PJLink input code, e.g. "31" for Digital 1.
func (i Input) Code() string {
	return strconv.Itoa(int(i.Type)) + strconv.Itoa(i.Index)
}

// String returns a human-readable input name such as "Digital 1".
func (i Input) String() string {
	return fmt.Sprintf("%s %d", i.Type, i.Index)
}

// Named inputs for the common connector layout where each class carries
// two sources.
var (
	InputPresetRGB1   = Input{Type: InputRGB, Index: 1}
	InputPresetRGB2   = Input{Type: InputRGB, Index: 2}
	InputPresetVideo  = Input{Type: InputVideo, Index: 1}
	InputPresetSVideo = Input{Type: InputVideo, Index: 2}
	InputPresetDVI    = Input{Type: InputDigital, Index: 1}
	InputPresetHDMI   = Input{Type: InputDigital, Index: 2}
)

// InputPresets maps lowercase preset names to their inputs.
var InputPresets = map[string]Input{
	"rgb1":   InputPresetRGB1,
	"rgb2":   InputPresetRGB2,
	"video":  InputPresetVideo,
	"svideo": InputPresetSVideo,
	"dvi":    InputPresetDVI,
	"hdmi":   InputPresetHDMI,
}

// LookupInputPreset returns the preset with the given name, ignoring case.
func LookupInputPreset(name string) (Input, bool) {
	in, ok := InputPresets[strings.ToLower(name)]
	return in, ok
}

// ParseInput parses a two digit PJLink input code.
func ParseInput(code string) (Input, error) {
	if len(code) != 2 {
		return Input{}, protocolError("ParseInput",
			fmt.Sprintf("input code must be two digits, got %q", code), nil)
	}
	in := Input{Type: InputType(code[0] - '0'), Index: int(code[1] - '0')}
	if err := newInputValidator().ValidateInput(in.Type, in.Index); err != nil {
		return Input{}, protocolError("ParseInput", fmt.Sprintf("invalid input code %q", code), err)
	}
	return in, nil
}

// InputCommand returns the command that selects the given input.
func InputCommand(in Input) (Command, error) {
	if err := newInputValidator().ValidateInput(in.Type, in.Index); err != nil {
		return Command{}, err
	}
	return Command{Code: CmdInput, Param: in.Code()}, nil
}

// MuteCommand returns the command that applies a mute setting.
// Only the six settable states are accepted.
func MuteCommand(setting MuteStatus) (Command, error) {
	code, ok := setting.code()
	if !ok {
		return Command{}, validationError("MuteCommand",
			fmt.Sprintf("mute state %q cannot be set", setting), nil)
	}
	return Command{Code: CmdAVMute, Param: code}, nil
}
