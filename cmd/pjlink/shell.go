// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tenthirtyam/go-pjlink"
)

// shell is the interactive command loop.
type shell struct {
	projector *pjlink.Projector
	out       *printer
	rl        *readline.Instance
}

// runShell reads commands until EOF, "exit" or ctx is cancelled.
func runShell(ctx context.Context, cfg *pjlink.Config, out *printer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pjlink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s := &shell{
		projector: cfg.NewProjector(pjlink.WithLogger(newLogger(cfg.LogLevel, rl.Stderr()))),
		out:       newPrinter(rl.Stdout(), out.enabled()),
		rl:        rl,
	}
	return s.run(ctx)
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintf(s.rl.Stdout(), "Connected to %s. Type \"help\" for commands.\n", s.projector.Endpoint().Address())

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help", "?":
			fmt.Fprint(s.rl.Stdout(), commandHelp)
			fmt.Fprintln(s.rl.Stdout(), "  exit                                    Leave the shell")
		case "exit", "quit":
			return nil
		default:
			if err := dispatch(ctx, s.projector, s.out, args); err != nil {
				s.out.Failure(s.rl.Stdout(), err)
			}
		}
	}
}

func completer() *readline.PrefixCompleter {
	onOff := []readline.PrefixCompleterInterface{
		readline.PcItem("on"),
		readline.PcItem("off"),
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("power", readline.PcItem("on"), readline.PcItem("off"), readline.PcItem("status")),
		readline.PcItem("input",
			readline.PcItem("rgb"), readline.PcItem("video"), readline.PcItem("digital"),
			readline.PcItem("storage"), readline.PcItem("network"),
			readline.PcItem("rgb1"), readline.PcItem("rgb2"), readline.PcItem("svideo"),
			readline.PcItem("dvi"), readline.PcItem("hdmi")),
		readline.PcItem("mute",
			readline.PcItem("status"),
			readline.PcItem("video", onOff...),
			readline.PcItem("audio", onOff...),
			readline.PcItem("shutter", readline.PcItem("open"), readline.PcItem("close"))),
		readline.PcItem("lamp"),
		readline.PcItem("errors"),
		readline.PcItem("inputs"),
		readline.PcItem("name"),
		readline.PcItem("manufacturer"),
		readline.PcItem("model"),
		readline.PcItem("class"),
		readline.PcItem("info"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}
