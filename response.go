// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"strconv"
	"strings"
)

// PowerStatus is the decoded answer to a power query.
// The zero value is PowerUnknown.
type PowerStatus int

const (
	PowerUnknown PowerStatus = iota
	PowerOff
	PowerOn
	PowerCooling
	PowerWarmUp
	PowerUnavailable
	PowerProjectorFailure
)

// String returns the display name of the power state.
func (s PowerStatus) String() string {
	switch s {
	case PowerOff:
		return "Power Off"
	case PowerOn:
		return "Power On"
	case PowerCooling:
		return "Cooling Down"
	case PowerWarmUp:
		return "Warming Up"
	case PowerUnavailable:
		return "Unavailable"
	case PowerProjectorFailure:
		return "Projector Failure"
	default:
		return "Unknown"
	}
}

var powerTable = map[string]PowerStatus{
	"%1POWR=0":    PowerOff,
	"%1POWR=1":    PowerOn,
	"%1POWR=2":    PowerCooling,
	"%1POWR=3":    PowerWarmUp,
	"%1POWR=ERR3": PowerUnavailable,
	"%1POWR=ERR4": PowerProjectorFailure,
}

// DecodePowerStatus maps a trimmed power query response to a PowerStatus.
// Matching is exact; anything else yields PowerUnknown.
func DecodePowerStatus(raw string) PowerStatus {
	if status, ok := powerTable[raw]; ok {
		return status
	}
	return PowerUnknown
}

// MuteStatus is the decoded answer to an AV mute query. The first six
// states can also be set with MuteCommand.
// The zero value is MuteUnknown.
type MuteStatus int

const (
	MuteUnknown MuteStatus = iota
	MuteVideoOff
	MuteVideoOn
	MuteAudioOff
	MuteAudioOn
	MuteShutterOpen
	MuteShutterClosed
	MuteUnavailable
	MuteProjectorFailure
)

// String returns the display name of the mute state.
func (m MuteStatus) String() string {
	switch m {
	case MuteVideoOff:
		return "Video Mute Off"
	case MuteVideoOn:
		return "Video Mute On"
	case MuteAudioOff:
		return "Audio Mute Off"
	case MuteAudioOn:
		return "Audio Mute On"
	case MuteShutterOpen:
		return "Shutter Open"
	case MuteShutterClosed:
		return "Shutter Closed"
	case MuteUnavailable:
		return "Unavailable/In Standby"
	case MuteProjectorFailure:
		return "Projector Failure"
	default:
		return "Unknown"
	}
}

// code returns the AVMT parameter for settable states.
func (m MuteStatus) code() (string, bool) {
	switch m {
	case MuteVideoOff:
		return "10", true
	case MuteVideoOn:
		return "11", true
	case MuteAudioOff:
		return "20", true
	case MuteAudioOn:
		return "21", true
	case MuteShutterOpen:
		return "30", true
	case MuteShutterClosed:
		return "31", true
	default:
		return "", false
	}
}

var muteTable = map[string]MuteStatus{
	"%1AVMT=10":   MuteVideoOff,
	"%1AVMT=11":   MuteVideoOn,
	"%1AVMT=20":   MuteAudioOff,
	"%1AVMT=21":   MuteAudioOn,
	"%1AVMT=30":   MuteShutterOpen,
	"%1AVMT=31":   MuteShutterClosed,
	"%1AVMT=ERR3": MuteUnavailable,
	"%1AVMT=ERR4": MuteProjectorFailure,
}

// DecodeMuteStatus maps a trimmed AV mute query response to a MuteStatus.
// Matching is exact; anything else yields MuteUnknown.
func DecodeMuteStatus(raw string) MuteStatus {
	if status, ok := muteTable[raw]; ok {
		return status
	}
	return MuteUnknown
}

// Ack is the device's answer to a control command.
type Ack int

const (
	AckUnknown Ack = iota
	AckOK
	AckUndefinedCommand
	AckOutOfParameter
	AckUnavailable
	AckProjectorFailure
)

// String returns the display name of the acknowledgement.
func (a Ack) String() string {
	switch a {
	case AckOK:
		return "OK"
	case AckUndefinedCommand:
		return "Undefined Command"
	case AckOutOfParameter:
		return "Out Of Parameter"
	case AckUnavailable:
		return "Unavailable Time"
	case AckProjectorFailure:
		return "Projector Failure"
	default:
		return "Unknown"
	}
}

var ackTable = map[string]Ack{
	"OK":   AckOK,
	"ERR1": AckUndefinedCommand,
	"ERR2": AckOutOfParameter,
	"ERR3": AckUnavailable,
	"ERR4": AckProjectorFailure,
}

// DecodeAck maps the response to a control command to an Ack.
// The response must carry the header of the command that was sent.
func DecodeAck(code CommandCode, raw string) Ack {
	prefix := Class1Header + string(code) + "="
	if !strings.HasPrefix(raw, prefix) {
		return AckUnknown
	}
	if ack, ok := ackTable[raw[len(prefix):]]; ok {
		return ack
	}
	return AckUnknown
}

// ExtractValue returns everything after the last '=' in a response, verbatim.
// A response without '=' is returned unchanged.
func ExtractValue(raw string) string {
	return raw[strings.LastIndex(raw, "=")+1:]
}

// Lamp is one lamp's entry in a LAMP response.
type Lamp struct {
	Hours int
	On    bool
}

// ParseLampReport parses the value of a LAMP response: pairs of cumulative
// hours and an on/off flag, separated by spaces.
func ParseLampReport(value string) ([]Lamp, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, protocolError("ParseLampReport",
			fmt.Sprintf("lamp report must contain hour/state pairs, got %q", value), nil)
	}

	lamps := make([]Lamp, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		hours, err := strconv.Atoi(fields[i])
		if err != nil || hours < 0 {
			return nil, protocolError("ParseLampReport",
				fmt.Sprintf("invalid lamp hours %q", fields[i]), err)
		}
		var on bool
		switch fields[i+1] {
		case "0":
		case "1":
			on = true
		default:
			return nil, protocolError("ParseLampReport",
				fmt.Sprintf("invalid lamp state %q", fields[i+1]), nil)
		}
		lamps = append(lamps, Lamp{Hours: hours, On: on})
	}
	return lamps, nil
}

// ErrorLevel is the severity of one ERST component.
type ErrorLevel int

const (
	ErrorLevelOK ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelError
)

// String returns the display name of the level.
func (l ErrorLevel) String() string {
	switch l {
	case ErrorLevelOK:
		return "OK"
	case ErrorLevelWarning:
		return "Warning"
	case ErrorLevelError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrorReport is the decoded value of an ERST response.
type ErrorReport struct {
	Fan         ErrorLevel
	Lamp        ErrorLevel
	Temperature ErrorLevel
	Cover       ErrorLevel
	Filter      ErrorLevel
	Other       ErrorLevel
}

// Healthy reports whether every component is OK.
func (r ErrorReport) Healthy() bool {
	return r == ErrorReport{}
}

// ParseErrorReport parses the six digit value of an ERST response.
func ParseErrorReport(value string) (ErrorReport, error) {
	if len(value) != 6 {
		return ErrorReport{}, protocolError("ParseErrorReport",
			fmt.Sprintf("error report must be six digits, got %q", value), nil)
	}

	var levels [6]ErrorLevel
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '0', '1', '2':
			levels[i] = ErrorLevel(value[i] - '0')
		default:
			return ErrorReport{}, protocolError("ParseErrorReport",
				fmt.Sprintf("invalid error level %q at position %d", value[i], i), nil)
		}
	}

	return ErrorReport{
		Fan:         levels[0],
		Lamp:        levels[1],
		Temperature: levels[2],
		Cover:       levels[3],
		Filter:      levels[4],
		Other:       levels[5],
	}, nil
}

// ParseInputList parses the value of an INST response.
func ParseInputList(value string) ([]Input, error) {
	fields := strings.Fields(value)
	inputs := make([]Input, 0, len(fields))
	for _, field := range fields {
		in, err := ParseInput(field)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
