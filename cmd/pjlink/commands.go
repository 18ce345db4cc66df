// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tenthirtyam/go-pjlink"
)

const commandHelp = `Commands:
  power on|off|status                     Switch power or show the power state
  input [type index]                      Show or select the input (type: rgb, video, digital, storage, network or 1-5)
  input preset                            Select a named input (rgb1, rgb2, video, svideo, dvi, hdmi)
  mute status                             Show the AV mute state
  mute video on|off                       Blank or restore the picture
  mute audio on|off                       Mute or unmute audio
  mute shutter open|close                 Open or close the shutter
  lamp                                    Show lamp hours and state
  errors                                  Show the error status of each component
  inputs                                  List the available inputs
  name | manufacturer | model | class     Show device information
  info                                    Show other device information
  status                                  Run every query
`

var errUsage = errors.New("usage")

// dispatch runs one command against the projector and prints its result.
func dispatch(ctx context.Context, p *pjlink.Projector, out *printer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd := strings.ToLower(args[0])
	rest := args[1:]

	switch cmd {
	case "power":
		return cmdPower(ctx, p, out, rest)
	case "input":
		return cmdInput(ctx, p, out, rest)
	case "mute":
		return cmdMute(ctx, p, out, rest)
	case "lamp":
		return cmdLamp(ctx, p, out)
	case "errors":
		return cmdErrors(ctx, p, out)
	case "inputs":
		return cmdInputs(ctx, p, out)
	case "name":
		return cmdValue(ctx, out, "Name", p.Name)
	case "manufacturer":
		return cmdValue(ctx, out, "Manufacturer", p.Manufacturer)
	case "model":
		return cmdValue(ctx, out, "Model", p.Model)
	case "class":
		return cmdValue(ctx, out, "Class", p.Class)
	case "info":
		return cmdValue(ctx, out, "Info", p.OtherInfo)
	case "status":
		return cmdStatus(ctx, p, out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func cmdPower(ctx context.Context, p *pjlink.Projector, out *printer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: power on|off|status", errUsage)
	}

	switch strings.ToLower(args[0]) {
	case "on":
		return printAck(ctx, out, "Power on", p.PowerOn)
	case "off":
		return printAck(ctx, out, "Power off", p.PowerOff)
	case "status":
		status, err := p.PowerStatus(ctx)
		if err != nil {
			return err
		}
		out.Power(status)
		return nil
	default:
		return fmt.Errorf("%w: power on|off|status", errUsage)
	}
}

func cmdInput(ctx context.Context, p *pjlink.Projector, out *printer, args []string) error {
	switch len(args) {
	case 0:
		code, err := p.Input(ctx)
		if err != nil {
			return err
		}
		in, err := pjlink.ParseInput(code)
		if err != nil {
			out.Value("Input", code)
			return nil
		}
		out.Value("Input", fmt.Sprintf("%s (%s)", in, in.Code()))
		return nil
	case 1:
		in, ok := pjlink.LookupInputPreset(args[0])
		if !ok {
			return fmt.Errorf("%w: unknown input preset %q", errUsage, args[0])
		}
		label := fmt.Sprintf("Input %s (%s)", strings.ToUpper(args[0]), in)
		return printAck(ctx, out, label, func(ctx context.Context) (pjlink.Ack, error) {
			return p.SelectInput(ctx, in)
		})
	case 2:
		inputType, err := parseInputType(args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: input index must be a number, got %q", errUsage, args[1])
		}
		label := "Input " + pjlink.Input{Type: inputType, Index: index}.String()
		return printAck(ctx, out, label, func(ctx context.Context) (pjlink.Ack, error) {
			return p.SetInput(ctx, inputType, index)
		})
	default:
		return fmt.Errorf("%w: input [preset | type index]", errUsage)
	}
}

// parseInputType accepts an input class name or its digit.
func parseInputType(s string) (pjlink.InputType, error) {
	switch strings.ToLower(s) {
	case "rgb", "1":
		return pjlink.InputRGB, nil
	case "video", "2":
		return pjlink.InputVideo, nil
	case "digital", "3":
		return pjlink.InputDigital, nil
	case "storage", "4":
		return pjlink.InputStorage, nil
	case "network", "5":
		return pjlink.InputNetwork, nil
	default:
		return 0, fmt.Errorf("%w: unknown input type %q", errUsage, s)
	}
}

func cmdMute(ctx context.Context, p *pjlink.Projector, out *printer, args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "status") {
		status, err := p.MuteStatus(ctx)
		if err != nil {
			return err
		}
		out.Mute(status)
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: mute status|video on|off|audio on|off|shutter open|close", errUsage)
	}

	target, setting := strings.ToLower(args[0]), strings.ToLower(args[1])
	switch target + " " + setting {
	case "video on":
		return printAck(ctx, out, "Video mute on", p.VideoMuteOn)
	case "video off":
		return printAck(ctx, out, "Video mute off", p.VideoMuteOff)
	case "audio on":
		return printAck(ctx, out, "Audio mute on", p.AudioMuteOn)
	case "audio off":
		return printAck(ctx, out, "Audio mute off", p.AudioMuteOff)
	case "shutter open":
		return printAck(ctx, out, "Shutter open", p.AVShutterOpen)
	case "shutter close", "shutter closed":
		return printAck(ctx, out, "Shutter close", p.AVShutterClose)
	default:
		return fmt.Errorf("%w: unknown mute setting %q", errUsage, target+" "+setting)
	}
}

func cmdLamp(ctx context.Context, p *pjlink.Projector, out *printer) error {
	value, err := p.LampInfo(ctx)
	if err != nil {
		return err
	}
	lamps, err := pjlink.ParseLampReport(value)
	if err != nil {
		out.Value("Lamp", value)
		return nil
	}
	for i, lamp := range lamps {
		out.Lamp(i+1, lamp)
	}
	return nil
}

func cmdErrors(ctx context.Context, p *pjlink.Projector, out *printer) error {
	value, err := p.ErrorStatus(ctx)
	if err != nil {
		return err
	}
	report, err := pjlink.ParseErrorReport(value)
	if err != nil {
		out.Value("Errors", value)
		return nil
	}
	out.ErrorReport(report)
	return nil
}

func cmdInputs(ctx context.Context, p *pjlink.Projector, out *printer) error {
	value, err := p.InputList(ctx)
	if err != nil {
		return err
	}
	inputs, err := pjlink.ParseInputList(value)
	if err != nil {
		out.Value("Inputs", value)
		return nil
	}
	for _, in := range inputs {
		out.Value(in.Code(), in.String())
	}
	return nil
}

func cmdValue(ctx context.Context, out *printer, label string, query func(context.Context) (string, error)) error {
	value, err := query(ctx)
	if err != nil {
		return err
	}
	out.Value(label, value)
	return nil
}

// cmdStatus runs every query, continuing past failures.
func cmdStatus(ctx context.Context, p *pjlink.Projector, out *printer) error {
	queries := [][]string{
		{"power", "status"},
		{"mute", "status"},
		{"input"},
		{"lamp"},
		{"errors"},
		{"name"},
		{"manufacturer"},
		{"model"},
		{"class"},
		{"info"},
	}

	var errs []error
	for _, args := range queries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := dispatch(ctx, p, out, args); err != nil {
			out.Failure(out.w, fmt.Errorf("%s: %w", args[0], err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// printAck runs a control command and reports anything but OK as an error.
func printAck(ctx context.Context, out *printer, label string, control func(context.Context) (pjlink.Ack, error)) error {
	ack, err := control(ctx)
	if err != nil {
		return err
	}
	out.Ack(label, ack)
	if ack != pjlink.AckOK {
		return fmt.Errorf("projector answered %s", ack)
	}
	return nil
}
