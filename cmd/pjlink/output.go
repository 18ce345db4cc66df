// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/tenthirtyam/go-pjlink"
)

// colorEnabled reports whether w is a terminal and colors were not disabled.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer renders command results, coloring states when enabled.
type printer struct {
	w        io.Writer
	useColor bool

	label func(a ...interface{}) string
	good  func(a ...interface{}) string
	warn  func(a ...interface{}) string
	bad   func(a ...interface{}) string
	muted func(a ...interface{}) string
}

func newPrinter(w io.Writer, useColor bool) *printer {
	palette := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	return &printer{
		w:        w,
		useColor: useColor,
		label:    palette(color.Bold),
		good:     palette(color.FgGreen),
		warn:     palette(color.FgYellow),
		bad:      palette(color.FgRed, color.Bold),
		muted:    palette(color.FgCyan),
	}
}

func (p *printer) enabled() bool {
	return p.useColor
}

// Value prints a label and a plain value.
func (p *printer) Value(label, value string) {
	fmt.Fprintf(p.w, "%s: %s\n", p.label(label), value)
}

// Power prints a power state.
func (p *printer) Power(status pjlink.PowerStatus) {
	paint := p.good
	switch status {
	case pjlink.PowerOff:
		paint = p.muted
	case pjlink.PowerCooling, pjlink.PowerWarmUp:
		paint = p.warn
	case pjlink.PowerUnavailable, pjlink.PowerProjectorFailure, pjlink.PowerUnknown:
		paint = p.bad
	}
	fmt.Fprintf(p.w, "%s: %s\n", p.label("Power"), paint(status.String()))
}

// Mute prints an AV mute state.
func (p *printer) Mute(status pjlink.MuteStatus) {
	paint := p.good
	switch status {
	case pjlink.MuteVideoOn, pjlink.MuteAudioOn, pjlink.MuteShutterClosed:
		paint = p.warn
	case pjlink.MuteUnavailable, pjlink.MuteProjectorFailure, pjlink.MuteUnknown:
		paint = p.bad
	}
	fmt.Fprintf(p.w, "%s: %s\n", p.label("Mute"), paint(status.String()))
}

// Ack prints the answer to a control command.
func (p *printer) Ack(label string, ack pjlink.Ack) {
	paint := p.good
	if ack != pjlink.AckOK {
		paint = p.bad
	}
	fmt.Fprintf(p.w, "%s: %s\n", p.label(label), paint(ack.String()))
}

// Lamp prints one lamp's hours and state.
func (p *printer) Lamp(n int, lamp pjlink.Lamp) {
	state := p.muted("off")
	if lamp.On {
		state = p.good("on")
	}
	fmt.Fprintf(p.w, "%s: %d hours, %s\n", p.label(fmt.Sprintf("Lamp %d", n)), lamp.Hours, state)
}

// ErrorReport prints each ERST component with its level.
func (p *printer) ErrorReport(report pjlink.ErrorReport) {
	rows := []struct {
		name  string
		level pjlink.ErrorLevel
	}{
		{"Fan", report.Fan},
		{"Lamp", report.Lamp},
		{"Temperature", report.Temperature},
		{"Cover", report.Cover},
		{"Filter", report.Filter},
		{"Other", report.Other},
	}

	for _, row := range rows {
		paint := p.good
		switch row.level {
		case pjlink.ErrorLevelWarning:
			paint = p.warn
		case pjlink.ErrorLevelError:
			paint = p.bad
		}
		fmt.Fprintf(p.w, "%s: %s\n", p.label(row.name), paint(row.level.String()))
	}
}

// Failure prints an error to w.
func (p *printer) Failure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", p.bad("Error:"), err)
	if pjlink.IsPJLinkError(err, pjlink.ErrAuthentication) {
		fmt.Fprintf(w, "%s\n", p.warn("Check the password, or set "+pjlink.PasswordEnv+"."))
	}
}
